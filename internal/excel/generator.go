package excel

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/billboards/internal/ledger"
	"github.com/nurpe/billboards/internal/model"
)

type ContractRow struct {
	Contract model.Contract
	Balance  ledger.Balance
}

type ContractsReport struct {
	Currency       string
	Now            time.Time
	NearExpiryDays int
	Rows           []ContractRow
	Payments       []model.Payment
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes a summary sheet with one line per contract, a sheet per
// customer listing installment schedules, and a closing ledger sheet.
func (g *Generator) Generate(report ContractsReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	summarySheet := "Contracts"
	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	g.writeSummary(file, summarySheet, report)

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, group := range groupByCustomer(report.Rows) {
		sheetName := buildSheetName(group.name, group.id, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		g.writeDetail(file, sheetName, group)
	}

	paymentsSheet := buildSheetName("Payments", uuid.Nil, usedNames)
	if _, err := file.NewSheet(paymentsSheet); err != nil {
		return nil, err
	}
	g.writePayments(file, paymentsSheet, report)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report ContractsReport) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Generated")
	set("B1", formatDate(report.Now))
	set("A2", "Contracts")
	set("B2", len(report.Rows))
	set("A3", "Currency")
	set("B3", report.Currency)

	tableRow := 5
	headers := []string{
		"Number",
		"Customer",
		"Ad type",
		"Start",
		"End",
		"Status",
		"Days left",
		"Billboards",
		"Total",
		"Paid",
		"Remaining",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, row := range report.Rows {
		c := row.Contract
		r := tableRow + 1 + i
		status := string(c.Status(report.Now))
		if c.NearExpiry(report.Now, report.NearExpiryDays) {
			status = "near expiry"
		}
		set(fmt.Sprintf("A%d", r), c.Number)
		set(fmt.Sprintf("B%d", r), c.CustomerName)
		set(fmt.Sprintf("C%d", r), c.AdType)
		set(fmt.Sprintf("D%d", r), formatDate(c.StartDate))
		set(fmt.Sprintf("E%d", r), formatDate(c.EndDate))
		set(fmt.Sprintf("F%d", r), status)
		set(fmt.Sprintf("G%d", r), c.DaysRemaining(report.Now))
		set(fmt.Sprintf("H%d", r), len(c.BillboardIDs))
		set(fmt.Sprintf("I%d", r), c.FinalTotal.StringFixed(2))
		set(fmt.Sprintf("J%d", r), row.Balance.Paid.StringFixed(2))
		set(fmt.Sprintf("K%d", r), row.Balance.Remaining.StringFixed(2))
	}

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "B", "C", 32)
	_ = file.SetColWidth(sheet, "D", "H", 14)
	_ = file.SetColWidth(sheet, "I", "K", 16)
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, group customerGroup) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Customer")
	set("B1", group.name)
	set("A2", "Contracts")
	set("B2", len(group.rows))

	tableRow := 4
	headers := []string{"Contract", "Installment", "Type", "Due", "Description", "Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	r := tableRow + 1
	for _, row := range group.rows {
		for _, inst := range row.Contract.Installments {
			set(fmt.Sprintf("A%d", r), row.Contract.Number)
			set(fmt.Sprintf("B%d", r), inst.Index+1)
			set(fmt.Sprintf("C%d", r), string(inst.PaymentType))
			set(fmt.Sprintf("D%d", r), formatDate(inst.DueDate))
			set(fmt.Sprintf("E%d", r), inst.Description)
			set(fmt.Sprintf("F%d", r), inst.Amount.StringFixed(2))
			r++
		}
	}

	_ = file.SetColWidth(sheet, "A", "D", 14)
	_ = file.SetColWidth(sheet, "E", "E", 40)
	_ = file.SetColWidth(sheet, "F", "F", 16)
}

func (g *Generator) writePayments(file *excelize.File, sheet string, report ContractsReport) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	numbers := make(map[uuid.UUID]int64, len(report.Rows))
	for _, row := range report.Rows {
		numbers[row.Contract.ID] = row.Contract.Number
	}

	headers := []string{"Date", "Contract", "Type", "Amount", "Notes"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}
	for i, p := range report.Payments {
		r := i + 2
		set(fmt.Sprintf("A%d", r), formatDate(p.PaidAt))
		if number, ok := numbers[p.ContractID]; ok {
			set(fmt.Sprintf("B%d", r), number)
		}
		set(fmt.Sprintf("C%d", r), string(p.EntryType))
		set(fmt.Sprintf("D%d", r), p.Amount.StringFixed(2))
		set(fmt.Sprintf("E%d", r), p.Notes)
	}

	_ = file.SetColWidth(sheet, "A", "D", 14)
	_ = file.SetColWidth(sheet, "E", "E", 40)
}

type customerGroup struct {
	id   uuid.UUID
	name string
	rows []ContractRow
}

func groupByCustomer(rows []ContractRow) []customerGroup {
	index := make(map[uuid.UUID]int)
	var groups []customerGroup
	for _, row := range rows {
		id := row.Contract.CustomerID
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, customerGroup{id: id, name: row.Contract.CustomerName})
		}
		groups[i].rows = append(groups[i].rows, row)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return strings.ToLower(groups[a].name) < strings.ToLower(groups[b].name)
	})
	return groups
}

func buildSheetName(name string, id uuid.UUID, used map[string]struct{}) string {
	base := strings.TrimSpace(name)
	if base == "" {
		base = id.String()
	}
	base = truncateRunes(sanitizeSheetName(base), 31)

	candidate := base
	counter := 2
	for {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		candidate = truncateRunes(base, 31-len(suffix)) + suffix
		counter++
	}
}

// Sheet names are limited to 31 characters; cut on rune boundaries so Arabic
// names stay valid UTF-8.
func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit])
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
		"'", "",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Sheet"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
