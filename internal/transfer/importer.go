package transfer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"housebill/internal/billing"
	"housebill/internal/models"

	"github.com/google/uuid"
)

// ImportResult reports the outcome of a CSV parse/import run. Malformed rows
// are skipped, never fatal; Errors carries one message per skipped row so the
// caller can show diagnostics without failing the batch.
type ImportResult struct {
	Records  []*models.Member `json:"records"`
	Imported int              `json:"imported"`
	Errors   []string         `json:"errors"`
}

// ParseMembersCSV parses CSV text into member creation records, assigning
// every record to the target house. Column order follows the export format.
// Defaults for missing fields: empty email/phone, fee 0, monthly cycle, and
// today's date for payment/expiration.
func ParseMembersCSV(data string, houseID uuid.UUID, today time.Time) *ImportResult {
	result := &ImportResult{Errors: []string{}}
	today = billing.Midnight(today)

	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if line == 1 && isHeaderRow(record) {
			continue
		}

		name := strings.TrimSpace(field(record, 0))
		if name == "" {
			continue // rows without a name are skipped, not rejected
		}

		member := &models.Member{
			ID:             uuid.New(),
			HouseID:        houseID,
			Name:           name,
			Email:          strings.TrimSpace(field(record, 1)),
			Phone:          strings.TrimSpace(field(record, 2)),
			MonthlyFee:     parseFee(field(record, 3)),
			BillingCycle:   string(billing.ParseCycle(field(record, 4))),
			PaymentDate:    parseDate(field(record, 5), today),
			ExpirationDate: parseDate(field(record, 6), today),
		}
		result.Records = append(result.Records, member)
	}

	return result
}

// isHeaderRow detects the export header: the Thai member-name column, or any
// first field containing "name" case-insensitively.
func isHeaderRow(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := strings.TrimSpace(record[0])
	return strings.Contains(first, "ชื่อสมาชิก") || strings.Contains(strings.ToLower(first), "name")
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

func parseFee(raw string) float64 {
	fee, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || fee < 0 {
		return 0
	}
	return fee
}

func parseDate(raw string, fallback time.Time) time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return t
}
