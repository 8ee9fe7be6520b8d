package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
)

func sampleWorkshop() domain.Workshop {
	enrolled := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return domain.Workshop{
		ID:         3,
		Name:       "Macramé básico",
		Instructor: "Isabella",
		Capacity:   8,
		Enrollments: []domain.Enrollment{
			{UserID: 1, UserName: "Ana García", Email: "ana@example.com", EnrolledDate: enrolled},
			{UserID: 2, UserName: `Luis "Lucho" Pardo`, Email: "luis@example.com", EnrolledDate: enrolled.Add(24 * time.Hour)},
		},
	}
}

func TestEnrollmentsCSV(t *testing.T) {
	data := EnrollmentsCSV(sampleWorkshop())
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, `"ID Usuario","Nombre","Correo","Fecha de inscripción"`, lines[0])
	assert.Equal(t, `"1","Ana García","ana@example.com","2026-03-14"`, lines[1])
	assert.Equal(t, `"2","Luis ""Lucho"" Pardo","luis@example.com","2026-03-15"`, lines[2])
}

func TestEnrollmentsCSVEmptyWorkshop(t *testing.T) {
	data := EnrollmentsCSV(domain.Workshop{Name: "Sin inscritos"})
	assert.Equal(t, "\"ID Usuario\",\"Nombre\",\"Correo\",\"Fecha de inscripción\"\n", string(data))
}

func TestEnrollmentsXLSX(t *testing.T) {
	data, err := EnrollmentsXLSX(sampleWorkshop())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inscripciones")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID Usuario", "Nombre", "Correo", "Fecha de inscripción"}, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "ana@example.com", rows[1][2])
}

func TestQuoteDocumentRendersDetails(t *testing.T) {
	quoted := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	valid := quoted.Add(15 * 24 * time.Hour)
	q := domain.Quote{
		ID:            7,
		Number:        "COT-2026-007",
		CustomerName:  "Laura Mesa",
		CustomerEmail: "laura@example.com",
		CustomerPhone: "3109876543",
		Description:   "Kit DIY de macramé personalizado",
		Service:       "Personalización",
		Timeline:      "2 semanas",
		Quantity:      3,
		UnitPrice:     35000,
		Total:         105000,
		Status:        domain.QuoteQuoted,
		RequestedAt:   quoted.Add(-48 * time.Hour),
		QuotedAt:      &quoted,
		ValidUntil:    &valid,
	}

	doc, err := QuoteDocument(q, "Isabella", "http://localhost:8080/v1/quotes/7")
	require.NoError(t, err)

	html := string(doc)
	assert.Contains(t, html, "COT-2026-007")
	assert.Contains(t, html, "Laura Mesa")
	assert.Contains(t, html, "Estado: Cotizada")
	assert.Contains(t, html, "Tel. 3109876543")
	assert.Contains(t, html, "Términos y condiciones")
	assert.Contains(t, html, "data:image/png;base64,")
}

func TestQuoteDocumentNilValidUntil(t *testing.T) {
	q := domain.Quote{
		ID:           8,
		Number:       "COT-2026-008",
		CustomerName: "Laura Mesa",
		Description:  "Tapiz a medida",
		Quantity:     1,
		UnitPrice:    120000,
		Total:        120000,
		Status:       domain.QuoteQuoted,
	}

	_, err := QuoteDocument(q, "Isabella", "http://localhost:8080/v1/quotes/8")
	require.NoError(t, err)
}
