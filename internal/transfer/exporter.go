package transfer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"housebill/internal/billing"
	"housebill/internal/models"
)

// csvHeader is the fixed export column order. Importers rely on it for
// round-trip compatibility, so it must not be reordered.
var csvHeader = []string{"ชื่อสมาชิก", "อีเมล", "เบอร์โทร", "ยอดชำระ", "รอบบิล", "วันชำระ", "วันหมดอายุ", "บ้าน"}

const dateLayout = "2006-01-02"

// MembersToCSV renders members as UTF-8 CSV, ordered by house name then
// member name. Standard CSV quoting is used: only fields containing commas,
// quotes, or newlines are quoted, so the byte output differs from formats
// that wrap every field in double quotes. Any RFC 4180 reader, including the
// importer in this package, parses both forms identically.
func MembersToCSV(members []*models.Member) (string, error) {
	sorted := make([]*models.Member, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		hi, hj := houseName(sorted[i]), houseName(sorted[j])
		if hi != hj {
			return hi < hj
		}
		return sorted[i].Name < sorted[j].Name
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, m := range sorted {
		record := []string{
			m.Name,
			m.Email,
			m.Phone,
			strconv.FormatFloat(m.MonthlyFee, 'f', -1, 64),
			string(billing.ParseCycle(m.BillingCycle)),
			formatDate(m.PaymentDate),
			formatDate(m.ExpirationDate),
			houseName(m),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExportFileName returns the attachment name for an export generated now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("members_export_%s.csv", now.Format(dateLayout))
}

func houseName(m *models.Member) string {
	if m.HouseName != nil {
		return *m.HouseName
	}
	return ""
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
