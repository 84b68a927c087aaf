package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salesledger/backend/internal/application/usecase/customer"
	"github.com/salesledger/backend/internal/application/usecase/product"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/integration/entrypoint/dto"
	"github.com/salesledger/backend/internal/integration/entrypoint/middleware"
)

// ProductController handles product catalog endpoints.
type ProductController struct {
	createUseCase *product.CreateProductUseCase
	getUseCase    *product.GetProductUseCase
	listUseCase   *product.ListProductsUseCase
	updateUseCase *product.UpdateProductUseCase
	deleteUseCase *product.DeleteProductUseCase
}

// NewProductController creates a new product controller instance.
func NewProductController(
	createUseCase *product.CreateProductUseCase,
	getUseCase *product.GetProductUseCase,
	listUseCase *product.ListProductsUseCase,
	updateUseCase *product.UpdateProductUseCase,
	deleteUseCase *product.DeleteProductUseCase,
) *ProductController {
	return &ProductController{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /products requests.
func (c *ProductController) List(ctx *gin.Context) {
	products, err := c.listUseCase.Execute(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": dto.ToProductResponses(products)})
}

// Get handles GET /products/:id requests.
func (c *ProductController) Get(ctx *gin.Context) {
	id, ok := parseProductID(ctx)
	if !ok {
		return
	}
	p, err := c.getUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Create handles POST /products requests.
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidProductFields))
		return
	}

	p, err := c.createUseCase.Execute(ctx.Request.Context(), product.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// Update handles PATCH /products/:id requests.
func (c *ProductController) Update(ctx *gin.Context) {
	id, ok := parseProductID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidProductFields))
		return
	}

	p, err := c.updateUseCase.Execute(ctx.Request.Context(), product.UpdateProductInput{
		ProductID:   id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Delete handles DELETE /products/:id requests.
func (c *ProductController) Delete(ctx *gin.Context) {
	id, ok := parseProductID(ctx)
	if !ok {
		return
	}
	if err := c.deleteUseCase.Execute(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func parseProductID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid product ID format",
			Code:  string(domainerror.ErrCodeInvalidProductFields),
		})
		return uuid.Nil, false
	}
	return id, true
}

// CustomerController handles customer endpoints.
type CustomerController struct {
	createUseCase       *customer.CreateCustomerUseCase
	listUseCase         *customer.ListCustomersUseCase
	getUseCase          *customer.GetCustomerUseCase
	updateUseCase       *customer.UpdateCustomerUseCase
	deleteUseCase       *customer.DeleteCustomerUseCase
	transactionsUseCase *customer.ListCustomerTransactionsUseCase
}

// NewCustomerController creates a new customer controller instance.
func NewCustomerController(
	createUseCase *customer.CreateCustomerUseCase,
	listUseCase *customer.ListCustomersUseCase,
	getUseCase *customer.GetCustomerUseCase,
	updateUseCase *customer.UpdateCustomerUseCase,
	deleteUseCase *customer.DeleteCustomerUseCase,
	transactionsUseCase *customer.ListCustomerTransactionsUseCase,
) *CustomerController {
	return &CustomerController{
		createUseCase:       createUseCase,
		listUseCase:         listUseCase,
		getUseCase:          getUseCase,
		updateUseCase:       updateUseCase,
		deleteUseCase:       deleteUseCase,
		transactionsUseCase: transactionsUseCase,
	}
}

// List handles GET /customers requests. Sales users only see their own customers.
func (c *CustomerController) List(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	customers, err := c.listUseCase.Execute(ctx.Request.Context(), actor)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"customers": dto.ToCustomerResponses(customers)})
}

// Get handles GET /customers/:id requests.
func (c *CustomerController) Get(ctx *gin.Context) {
	id, ok := parseCustomerID(ctx)
	if !ok {
		return
	}
	cust, err := c.getUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// Create handles POST /customers requests.
func (c *CustomerController) Create(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidCustomerFields))
		return
	}

	salesID, err := parseOptionalUUID(req.SalesID)
	if err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidCustomerFields))
		return
	}

	cust, err := c.createUseCase.Execute(ctx.Request.Context(), customer.CreateCustomerInput{
		Actor:   actor,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		SalesID: salesID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToCustomerResponse(cust))
}

// Update handles PUT /customers/:id requests.
func (c *CustomerController) Update(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseCustomerID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidCustomerFields))
		return
	}
	salesID, err := parseOptionalUUID(req.SalesID)
	if err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidCustomerFields))
		return
	}

	cust, err := c.updateUseCase.Execute(ctx.Request.Context(), customer.UpdateCustomerInput{
		Actor:      actor,
		CustomerID: id,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		SalesID:    salesID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// Delete handles DELETE /customers/:id requests.
func (c *CustomerController) Delete(ctx *gin.Context) {
	id, ok := parseCustomerID(ctx)
	if !ok {
		return
	}
	if err := c.deleteUseCase.Execute(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Transactions handles GET /customers/:id/transactions requests.
func (c *CustomerController) Transactions(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseCustomerID(ctx)
	if !ok {
		return
	}

	input := customer.ListCustomerTransactionsInput{Actor: actor, CustomerID: id}
	var err error
	if input.Page, err = queryInt(ctx, "page"); err != nil {
		respondInvalidField(ctx, "page", "must be a number")
		return
	}
	if input.Limit, err = queryInt(ctx, "limit"); err != nil {
		respondInvalidField(ctx, "limit", "must be a number")
		return
	}
	if input.StartDate, input.EndDate, ok = queryPeriod(ctx); !ok {
		return
	}

	result, err := c.transactionsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(result))
}

func parseCustomerID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid customer ID format",
			Code:  string(domainerror.ErrCodeInvalidCustomerFields),
		})
		return uuid.Nil, false
	}
	return id, true
}

// requireActor reads the authenticated caller or writes a 401.
func requireActor(ctx *gin.Context) (entity.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return actor, false
	}
	return actor, true
}

func parseOptionalUUID(value *string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
