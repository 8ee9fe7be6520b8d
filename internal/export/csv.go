// Package export renders workshop enrollment lists and quote documents
// into downloadable formats.
package export

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
)

var enrollmentHeader = []string{"ID Usuario", "Nombre", "Correo", "Fecha de inscripción"}

// EnrollmentsCSV renders a workshop's enrollment list as CSV. Every
// field is quoted and internal quotes are doubled, so names with
// commas or quotes survive a spreadsheet import intact.
func EnrollmentsCSV(w domain.Workshop) []byte {
	var buf bytes.Buffer
	writeCSVRow(&buf, enrollmentHeader)
	for _, e := range w.Enrollments {
		writeCSVRow(&buf, []string{
			strconv.Itoa(e.UserID),
			e.UserName,
			e.Email,
			e.EnrolledDate.Format("2006-01-02"),
		})
	}
	return buf.Bytes()
}

func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
