package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are stored as JSON numbers, matching existing ledgers.
	decimal.MarshalJSONWithoutQuotes = true
}

type TxType string

const (
	TxIncome  TxType = "income"
	TxExpense TxType = "expense"
)

type Category string

const (
	CategoryGeneral    Category = "general"
	CategoryFood       Category = "food"
	CategoryRent       Category = "rent"
	CategoryInvestment Category = "investment"
	CategorySalary     Category = "salary"
)

// Categories lists every category in menu order.
var Categories = []Category{CategoryGeneral, CategoryFood, CategoryRent, CategoryInvestment, CategorySalary}

func ParseTxType(input string) (TxType, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "", "income", "in", "+":
		return TxIncome, true
	case "expense", "out", "-":
		return TxExpense, true
	default:
		return TxIncome, false
	}
}

func ParseCategory(input string) (Category, bool) {
	s := Category(strings.TrimSpace(strings.ToLower(input)))
	if s == "" {
		return CategoryGeneral, true
	}
	for _, c := range Categories {
		if s == c {
			return c, true
		}
	}
	return CategoryGeneral, false
}

type Transaction struct {
	Amount   decimal.Decimal `json:"amount"`
	Type     TxType          `json:"type" validate:"required,oneof=income expense"`
	Category Category        `json:"category" validate:"required,oneof=general food rent investment salary"`
	Date     time.Time       `json:"date"`
}

// Signed returns the amount with the sign it contributes to the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TxExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Ledger is an append-only list of transactions.
type Ledger struct {
	txs []Transaction
}

func NewLedger(txs []Transaction) *Ledger {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	return &Ledger{txs: out}
}

func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

// ParseAmount reads the raw content of an amount field. Empty, non-numeric and
// negative input returns ErrInvalidAmount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Add parses rawAmount and appends a transaction stamped with now. On any error the
// ledger is unchanged.
func (l *Ledger) Add(rawAmount string, typ TxType, cat Category, now time.Time) (Transaction, error) {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return Transaction{}, err
	}
	tx := Transaction{Amount: amount, Type: typ, Category: cat, Date: now.UTC()}
	if err := validate.Struct(tx); err != nil {
		return Transaction{}, validationError(err)
	}
	l.txs = append(l.txs, tx)
	return tx, nil
}

// Balance folds income minus expense over every transaction.
func (l *Ledger) Balance() decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range l.txs {
		sum = sum.Add(tx.Signed())
	}
	return sum
}

// Totals returns the income and expense sums separately.
func (l *Ledger) Totals() (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, tx := range l.txs {
		if tx.Type == TxExpense {
			expense = expense.Add(tx.Amount)
		} else {
			income = income.Add(tx.Amount)
		}
	}
	return income, expense
}

// CategoryTotal is the signed sum of one category.
type CategoryTotal struct {
	Category Category
	Net      decimal.Decimal
	Count    int
}

// ByCategory returns signed totals per category in menu order, skipping empty ones.
func (l *Ledger) ByCategory() []CategoryTotal {
	idx := map[Category]*CategoryTotal{}
	for _, tx := range l.txs {
		ct, ok := idx[tx.Category]
		if !ok {
			ct = &CategoryTotal{Category: tx.Category, Net: decimal.Zero}
			idx[tx.Category] = ct
		}
		ct.Net = ct.Net.Add(tx.Signed())
		ct.Count++
	}
	order := map[Category]int{}
	for i, c := range Categories {
		order[c] = i
	}
	out := make([]CategoryTotal, 0, len(idx))
	for _, ct := range idx {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		oi, iok := order[out[i].Category]
		oj, jok := order[out[j].Category]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return out[i].Category < out[j].Category
	})
	return out
}

var (
	taxSlab1 = decimal.NewFromInt(250_000)
	taxSlab2 = decimal.NewFromInt(500_000)
	taxSlab3 = decimal.NewFromInt(1_000_000)
)

// EstimateTax applies the progressive income slabs: nothing up to 250000, 5% up to
// 500000, 20% up to 1000000 and 30% above.
func EstimateTax(income decimal.Decimal) decimal.Decimal {
	switch {
	case income.LessThanOrEqual(taxSlab1):
		return decimal.Zero
	case income.LessThanOrEqual(taxSlab2):
		return income.Sub(taxSlab1).Mul(decimal.RequireFromString("0.05"))
	case income.LessThanOrEqual(taxSlab3):
		return decimal.NewFromInt(12_500).Add(income.Sub(taxSlab2).Mul(decimal.RequireFromString("0.20")))
	default:
		return decimal.NewFromInt(112_500).Add(income.Sub(taxSlab3).Mul(decimal.RequireFromString("0.30")))
	}
}

// Money renders d with the currency symbol ahead of the grouped magnitude.
func (f Formatter) Money(currency string, d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + currency + f.Amount(d.Abs().InexactFloat64())
}
