package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salesledger/backend/internal/application/usecase/transaction"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/domain/valueobject"
	"github.com/salesledger/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	createUseCase        *transaction.CreateTransactionUseCase
	updateUseCase        *transaction.UpdateTransactionUseCase
	deleteUseCase        *transaction.DeleteTransactionUseCase
	listUseCase          *transaction.ListTransactionsUseCase
	getUseCase           *transaction.GetTransactionUseCase
	setLineStatusUseCase *transaction.SetLineStatusUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	setLineStatusUseCase *transaction.SetLineStatusUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase:        createUseCase,
		updateUseCase:        updateUseCase,
		deleteUseCase:        deleteUseCase,
		listUseCase:          listUseCase,
		getUseCase:           getUseCase,
		setLineStatusUseCase: setLineStatusUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		Actor:  actor,
		Type:   ctx.Query("type"),
		Status: ctx.Query("status"),
		Search: ctx.Query("search"),
	}

	var err error
	if input.Page, err = queryInt(ctx, "page"); err != nil {
		respondInvalidField(ctx, "page", "must be a number")
		return
	}
	if input.Limit, err = queryInt(ctx, "limit"); err != nil {
		respondInvalidField(ctx, "limit", "must be a number")
		return
	}
	if input.UserID, err = queryUUID(ctx, "user_id"); err != nil {
		respondInvalidField(ctx, "user_id", "must be a valid UUID")
		return
	}
	if input.CustomerID, err = queryUUID(ctx, "customer_id"); err != nil {
		respondInvalidField(ctx, "customer_id", "must be a valid UUID")
		return
	}
	if input.StartDate, input.EndDate, ok = queryPeriod(ctx); !ok {
		return
	}

	result, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(result))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseTransactionID(ctx, "id")
	if !ok {
		return
	}

	tx, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		TransactionID: id,
		Actor:         actor,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	posting, ok := toPostingInput(ctx, req)
	if !ok {
		return
	}
	posting.Actor = actor

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{PostingInput: posting})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PUT /transactions/:id requests. The submitted lines replace
// the stored ones and prices are re-resolved.
func (c *TransactionController) Update(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseTransactionID(ctx, "id")
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	posting, ok := toPostingInput(ctx, req)
	if !ok {
		return
	}
	posting.Actor = actor

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), transaction.UpdateTransactionInput{
		TransactionID: id,
		PostingInput:  posting,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseTransactionID(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: id,
		Actor:         actor,
	}); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SetLineStatus handles PATCH /transactions/lines/:lineId/status requests.
func (c *TransactionController) SetLineStatus(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	lineID, ok := parseTransactionID(ctx, "lineId")
	if !ok {
		return
	}

	var req dto.LineStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidTransactionStatus))
		return
	}

	output, err := c.setLineStatusUseCase.Execute(ctx.Request.Context(), transaction.SetLineStatusInput{
		LineID: lineID,
		Status: req.Status,
		Actor:  actor,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.LineStatusResponse{
		Line:              dto.ToTransactionLineResponse(output.Line),
		TransactionStatus: string(output.ParentStatus),
	})
}

func toPostingInput(ctx *gin.Context, req dto.TransactionRequest) (transaction.PostingInput, bool) {
	input := transaction.PostingInput{
		Description: req.Description,
		Type:        req.Type,
		ProofImage:  req.ProofImage,
		Lines:       make([]transaction.LineInput, 0, len(req.Lines)),
	}

	var err error
	if input.UserID, err = parseOptionalUUID(req.UserID); err != nil {
		respondInvalidField(ctx, "user_id", "must be a valid UUID")
		return input, false
	}
	if input.CustomerID, err = parseOptionalUUID(req.CustomerID); err != nil {
		respondInvalidField(ctx, "customer_id", "must be a valid UUID")
		return input, false
	}
	if req.Date != "" {
		date, err := parseTransactionDate(req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:  "transaction_date must be YYYY-MM-DD or RFC 3339",
				Code:   string(domainerror.ErrCodeInvalidTransactionDate),
				Fields: map[string]string{"transaction_date": "is invalid"},
			})
			return input, false
		}
		input.Date = date
	}

	for i, line := range req.Lines {
		productID, err := parseOptionalUUID(line.ProductID)
		if err != nil {
			respondInvalidField(ctx, "lines["+strconv.Itoa(i)+"].product_id", "must be a valid UUID")
			return input, false
		}
		input.Lines = append(input.Lines, transaction.LineInput{
			ProductID:    productID,
			ItemName:     line.ItemName,
			Quantity:     line.Quantity,
			PricePerUnit: line.PricePerUnit,
			TotalPrice:   line.TotalPrice,
		})
	}
	return input, true
}

func parseTransactionDate(value string) (time.Time, error) {
	if t, err := time.Parse(valueobject.DateLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func parseTransactionID(ctx *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		respondInvalidField(ctx, param, "must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func respondInvalidField(ctx *gin.Context, field, message string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:  "Invalid request",
		Code:   string(domainerror.ErrCodeMissingTransactionFields),
		Fields: map[string]string{field: message},
	})
}

func queryInt(ctx *gin.Context, key string) (int, error) {
	value := ctx.Query(key)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func queryUUID(ctx *gin.Context, key string) (*uuid.UUID, error) {
	value := ctx.Query(key)
	return parseOptionalUUID(&value)
}

// queryPeriod reads optional start_date and end_date filters. Either bound may be
// omitted. On a malformed value it writes a 400 and returns false.
func queryPeriod(ctx *gin.Context) (*time.Time, *time.Time, bool) {
	start, end := ctx.Query("start_date"), ctx.Query("end_date")
	if start == "" && end == "" {
		return nil, nil, true
	}
	period, err := valueobject.ParseDateRange(orDefault(start, "1970-01-01"), orDefault(end, "9999-12-31"))
	if err != nil {
		respondInvalidField(ctx, "start_date", "start_date and end_date must be YYYY-MM-DD with start on or before end")
		return nil, nil, false
	}
	return &period.Start, &period.End, true
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
