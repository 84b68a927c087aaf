package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

// Column keys shared by renderers and clients.
const (
	ColProductName      = "product_name"
	ColTotalQuantity    = "total_quantity"
	ColTotalRevenue     = "total_revenue"
	ColCustomerName     = "customer_name"
	ColTransactionCount = "transaction_count"
	ColTotalSpent       = "total_spent"
	ColSalesName        = "sales_name"
	ColTotalSales       = "total_sales"
	ColPeriod           = "period"
	ColTotalIncome      = "total_income"
	ColTotalExpense     = "total_expense"
	ColNetIncome        = "net_income"
	ColDate             = "date"
	ColType             = "type"
	ColStatus           = "status"
	ColProducts         = "products"
	ColTotalAmount      = "total_amount"
)

// AggregateProducts groups lines by product. Lines without a product are skipped.
// Records are ordered by revenue, highest first.
func AggregateProducts(period valueobject.DateRange, lines []LineRow) *entity.ReportTable {
	type bucket struct {
		name     string
		quantity int64
		revenue  decimal.Decimal
	}
	buckets := map[uuid.UUID]*bucket{}
	var order []uuid.UUID

	for _, l := range lines {
		if l.ProductID == nil {
			continue
		}
		b, ok := buckets[*l.ProductID]
		if !ok {
			b = &bucket{name: nameOr(l.ProductName, "Unknown product"), revenue: decimal.Zero}
			buckets[*l.ProductID] = b
			order = append(order, *l.ProductID)
		}
		b.quantity += int64(l.Quantity)
		b.revenue = b.revenue.Add(l.TotalPrice)
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := buckets[order[i]], buckets[order[j]]
		if c := a.revenue.Cmp(b.revenue); c != 0 {
			return c > 0
		}
		return a.name < b.name
	})

	table := newTable("Product Sales Report", entity.ReportDimensionProduct, period, []entity.ReportColumn{
		{Key: ColProductName, Header: "Product", Kind: entity.ColumnKindText, Width: 3},
		{Key: ColTotalQuantity, Header: "Quantity Sold", Kind: entity.ColumnKindInteger, Width: 1.5},
		{Key: ColTotalRevenue, Header: "Revenue", Kind: entity.ColumnKindMoney, Width: 2},
	})
	table.TotalColumn = ColTotalRevenue

	var totalQuantity int64
	for _, id := range order {
		b := buckets[id]
		totalQuantity += b.quantity
		table.Rows = append(table.Rows, entity.ReportRow{
			entity.TextCell(b.name),
			entity.IntCell(b.quantity),
			entity.MoneyCell(b.revenue),
		})
	}

	revenue, _ := table.GrandTotal()
	table.Summary = []entity.ReportSummaryItem{
		{Label: "Products Sold", Key: "product_count", Kind: entity.ColumnKindInteger, Int: int64(len(order))},
		{Label: "Total Quantity", Key: ColTotalQuantity, Kind: entity.ColumnKindInteger, Int: totalQuantity},
		{Label: "Total Revenue", Key: ColTotalRevenue, Kind: entity.ColumnKindMoney, Amount: revenue},
	}
	return table
}

// AggregateCustomers groups transactions by customer. Transactions without a
// customer are skipped. Records are ordered by total spent, highest first.
func AggregateCustomers(period valueobject.DateRange, rows []TransactionRow) *entity.ReportTable {
	groups := groupTransactions(rows, func(r TransactionRow) (uuid.UUID, string, bool) {
		if r.CustomerID == nil {
			return uuid.Nil, "", false
		}
		return *r.CustomerID, nameOr(r.CustomerName, "Unknown customer"), true
	})

	table := newTable("Customer Transactions Report", entity.ReportDimensionCustomer, period, []entity.ReportColumn{
		{Key: ColCustomerName, Header: "Customer", Kind: entity.ColumnKindText, Width: 3},
		{Key: ColTransactionCount, Header: "Transactions", Kind: entity.ColumnKindInteger, Width: 1.5},
		{Key: ColTotalSpent, Header: "Total Spent", Kind: entity.ColumnKindMoney, Width: 2},
	})
	table.TotalColumn = ColTotalSpent
	fillGroups(table, groups, "Customers", "customer_count")
	return table
}

// AggregateSalespeople groups transactions by owning user. Records are ordered
// by total sales, highest first.
func AggregateSalespeople(period valueobject.DateRange, rows []TransactionRow) *entity.ReportTable {
	groups := groupTransactions(rows, func(r TransactionRow) (uuid.UUID, string, bool) {
		return r.UserID, nameOr(r.UserName, "Unknown user"), true
	})

	table := newTable("Sales Performance Report", entity.ReportDimensionSalesperson, period, []entity.ReportColumn{
		{Key: ColSalesName, Header: "Salesperson", Kind: entity.ColumnKindText, Width: 3},
		{Key: ColTransactionCount, Header: "Transactions", Kind: entity.ColumnKindInteger, Width: 1.5},
		{Key: ColTotalSales, Header: "Total Sales", Kind: entity.ColumnKindMoney, Width: 2},
	})
	table.TotalColumn = ColTotalSales
	fillGroups(table, groups, "Salespeople", "sales_count")
	return table
}

// AggregateIncomeExpense sums income and expense totals over the period.
func AggregateIncomeExpense(period valueobject.DateRange, rows []TransactionRow) *entity.ReportTable {
	income, expense := decimal.Zero, decimal.Zero
	for _, r := range rows {
		switch r.Type {
		case entity.TransactionTypeIncome:
			income = income.Add(r.TotalAmount)
		case entity.TransactionTypeExpense:
			expense = expense.Add(r.TotalAmount)
		}
	}
	net := income.Sub(expense)

	table := newTable("Income & Expense Report", entity.ReportDimensionIncomeExpense, period, []entity.ReportColumn{
		{Key: ColPeriod, Header: "Period", Kind: entity.ColumnKindText, Width: 2.5},
		{Key: ColTotalIncome, Header: "Total Income", Kind: entity.ColumnKindMoney, Width: 2},
		{Key: ColTotalExpense, Header: "Total Expense", Kind: entity.ColumnKindMoney, Width: 2},
		{Key: ColNetIncome, Header: "Net Income", Kind: entity.ColumnKindMoney, Width: 2},
	})
	table.Rows = []entity.ReportRow{{
		entity.TextCell(period.String()),
		entity.MoneyCell(income),
		entity.MoneyCell(expense),
		entity.MoneyCell(net),
	}}
	table.Summary = []entity.ReportSummaryItem{
		{Label: "Total Income", Key: ColTotalIncome, Kind: entity.ColumnKindMoney, Amount: income},
		{Label: "Total Expense", Key: ColTotalExpense, Kind: entity.ColumnKindMoney, Amount: expense},
		{Label: "Net Income", Key: ColNetIncome, Kind: entity.ColumnKindMoney, Amount: net},
	}
	return table
}

// ListTransactions produces one record per transaction with a product summary
// such as "Coffee(2), Tea(1)".
func ListTransactions(title string, period valueobject.DateRange, rows []TransactionRow, lines []LineRow) *entity.ReportTable {
	items := map[uuid.UUID][]string{}
	for _, l := range lines {
		name := l.ProductName
		if l.ProductID == nil {
			name = l.ItemName
		}
		items[l.TransactionID] = append(items[l.TransactionID], fmt.Sprintf("%s(%d)", nameOr(name, "-"), l.Quantity))
	}

	table := newTable(nameOr(title, "Transaction Report"), entity.ReportDimensionTransactions, period, []entity.ReportColumn{
		{Key: ColDate, Header: "Date", Kind: entity.ColumnKindDate, Width: 1.4},
		{Key: ColCustomerName, Header: "Customer", Kind: entity.ColumnKindText, Width: 2},
		{Key: ColSalesName, Header: "Salesperson", Kind: entity.ColumnKindText, Width: 2},
		{Key: ColType, Header: "Type", Kind: entity.ColumnKindText, Width: 1.1},
		{Key: ColProducts, Header: "Products", Kind: entity.ColumnKindText, Width: 3.5},
		{Key: ColStatus, Header: "Status", Kind: entity.ColumnKindText, Width: 1.2},
		{Key: ColTotalAmount, Header: "Total", Kind: entity.ColumnKindMoney, Width: 1.8},
	})
	table.TotalColumn = ColTotalAmount

	income, expense := decimal.Zero, decimal.Zero
	for _, r := range rows {
		table.Rows = append(table.Rows, entity.ReportRow{
			entity.DateCell(r.TransactionDate),
			entity.TextCell(nameOr(r.CustomerName, "-")),
			entity.TextCell(nameOr(r.UserName, "-")),
			entity.TextCell(string(r.Type)),
			entity.TextCell(strings.Join(items[r.TransactionID], ", ")),
			entity.TextCell(string(r.Status)),
			entity.MoneyCell(r.TotalAmount),
		})
		if r.Type == entity.TransactionTypeIncome {
			income = income.Add(r.TotalAmount)
		} else {
			expense = expense.Add(r.TotalAmount)
		}
	}

	table.Summary = []entity.ReportSummaryItem{
		{Label: "Transactions", Key: ColTransactionCount, Kind: entity.ColumnKindInteger, Int: int64(len(rows))},
		{Label: "Total Income", Key: ColTotalIncome, Kind: entity.ColumnKindMoney, Amount: income},
		{Label: "Total Expense", Key: ColTotalExpense, Kind: entity.ColumnKindMoney, Amount: expense},
	}
	return table
}

type group struct {
	id    uuid.UUID
	name  string
	count int64
	total decimal.Decimal
}

func groupTransactions(rows []TransactionRow, key func(TransactionRow) (uuid.UUID, string, bool)) []*group {
	byID := map[uuid.UUID]*group{}
	var groups []*group
	for _, r := range rows {
		id, name, ok := key(r)
		if !ok {
			continue
		}
		g, seen := byID[id]
		if !seen {
			g = &group{id: id, name: name, total: decimal.Zero}
			byID[id] = g
			groups = append(groups, g)
		}
		g.count++
		g.total = g.total.Add(r.TotalAmount)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if c := groups[i].total.Cmp(groups[j].total); c != 0 {
			return c > 0
		}
		if groups[i].name != groups[j].name {
			return groups[i].name < groups[j].name
		}
		return groups[i].id.String() < groups[j].id.String()
	})
	return groups
}

func fillGroups(table *entity.ReportTable, groups []*group, countLabel, countKey string) {
	var transactions int64
	for _, g := range groups {
		transactions += g.count
		table.Rows = append(table.Rows, entity.ReportRow{
			entity.TextCell(g.name),
			entity.IntCell(g.count),
			entity.MoneyCell(g.total),
		})
	}

	total, _ := table.GrandTotal()
	table.Summary = []entity.ReportSummaryItem{
		{Label: countLabel, Key: countKey, Kind: entity.ColumnKindInteger, Int: int64(len(groups))},
		{Label: "Transactions", Key: ColTransactionCount, Kind: entity.ColumnKindInteger, Int: transactions},
		{Label: "Grand Total", Key: table.TotalColumn, Kind: entity.ColumnKindMoney, Amount: total},
	}
}

func newTable(title string, dimension entity.ReportDimension, period valueobject.DateRange, columns []entity.ReportColumn) *entity.ReportTable {
	return &entity.ReportTable{
		Title:     title,
		Dimension: dimension,
		StartDate: period.Start,
		EndDate:   period.End,
		Period:    period.String(),
		Columns:   columns,
		Rows:      []entity.ReportRow{},
	}
}

func nameOr(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}
