package budgetwise

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Labels of the financial summary the parser understands.
const (
	labelTotalIncome        = "Total Income:"
	labelTotalExpenses      = "Total Expenses:"
	labelNetBalance         = "Net Balance:"
	labelTransactionDetails = "Transaction Details:"
)

// decorationReplacer strips the characters allowed to decorate a numeric
// token: currency glyphs, the mojibake the rupee sign degrades to when a
// summary passes through a latin-1 round trip, thousands separators, and
// placeholder glyphs substituted for unencodable symbols.
var decorationReplacer = strings.NewReplacer(
	"â‚¹", "",
	"₹", "",
	"Rs.", "",
	"Rs", "",
	"$", "",
	"?", "",
	",", "",
	" ", " ",
)

// ParseFinancialContext turns a rendered financial summary into a
// FinancialContext. Missing labels and sections yield zero values; a label
// that is present but followed by an unparseable number is reported as a
// MALFORMED_CONTEXT error, since it indicates corrupt upstream data.
func ParseFinancialContext(raw string) (FinancialContext, error) {
	var fc FinancialContext

	var err error
	if fc.TotalIncome, err = parseLabelledAmount(raw, labelTotalIncome); err != nil {
		return FinancialContext{}, err
	}
	if fc.TotalExpenses, err = parseLabelledAmount(raw, labelTotalExpenses); err != nil {
		return FinancialContext{}, err
	}
	if fc.NetBalance, err = parseLabelledAmount(raw, labelNetBalance); err != nil {
		return FinancialContext{}, err
	}

	fc.Transactions = parseTransactionSection(raw)
	return fc, nil
}

// parseLabelledAmount extracts the amount following label up to the next
// line break. An absent label yields zero.
func parseLabelledAmount(raw, label string) (Amount, error) {
	idx := strings.Index(raw, label)
	if idx < 0 {
		return Amount{}, nil
	}
	rest := raw[idx+len(label):]
	if eol := strings.IndexByte(rest, '\n'); eol >= 0 {
		rest = rest[:eol]
	}
	cleaned := strings.TrimSpace(decorationReplacer.Replace(rest))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Amount{}, WrapError(ErrCodeMalformedContext,
			"unparseable value for "+strings.TrimSuffix(label, ":"), err)
	}
	return Amount{d}, nil
}

// parseTransactionSection collects every dash-marked line after the
// Transaction Details label, preserving source order.
func parseTransactionSection(raw string) []TransactionLine {
	idx := strings.Index(raw, labelTransactionDetails)
	if idx < 0 {
		return nil
	}

	var lines []TransactionLine
	for _, line := range strings.Split(raw[idx+len(labelTransactionDetails):], "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "-") {
			continue
		}
		entry := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
		if entry == "" {
			continue
		}
		lines = append(lines, parseTransactionLine(entry))
	}
	return lines
}

// parseTransactionLine splits "<description> (<Category> - ₹<amount>)".
// Category is the token before the first " - " inside the parentheses; the
// amount follows it with decoration stripped. A line that does not match
// keeps only its raw text.
func parseTransactionLine(entry string) TransactionLine {
	line := TransactionLine{Raw: entry}

	open := strings.LastIndexByte(entry, '(')
	end := strings.LastIndexByte(entry, ')')
	if open < 0 || end <= open {
		return line
	}
	inner := entry[open+1 : end]
	sep := strings.Index(inner, " - ")
	if sep < 0 {
		return line
	}

	cleaned := strings.TrimSpace(decorationReplacer.Replace(inner[sep+3:]))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return line
	}

	line.Description = strings.TrimSpace(entry[:open])
	line.Category = strings.TrimSpace(inner[:sep])
	line.Amount = Amount{d}
	return line
}
