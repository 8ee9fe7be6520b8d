package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
)

// QuoteDocData feeds the printable quote template.
type QuoteDocData struct {
	Quote      domain.Quote
	PreparedBy string
	IssuedAt   time.Time
	QRDataURI  template.URL
}

var quoteTmpl = template.Must(template.New("quote").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.0f", v) },
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
	"dateptr": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	},
}).Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Cotización {{.Quote.Number}}</title>
<style>
  body { font-family: Georgia, serif; color: #3d2c23; max-width: 720px; margin: 2rem auto; }
  h1 { border-bottom: 2px solid #b08d57; padding-bottom: .4rem; }
  table { width: 100%; border-collapse: collapse; margin-top: 1rem; }
  th, td { border: 1px solid #d8c7b0; padding: .5rem .8rem; text-align: left; }
  th { background: #f4ece1; }
  .total { font-weight: bold; }
  .meta { color: #7a6a58; font-size: .9rem; }
  .qr { float: right; }
</style>
</head>
<body>
<img class="qr" src="{{.QRDataURI}}" alt="QR" width="128" height="128">
<h1>Nudo Studio — Cotización {{.Quote.Number}}</h1>
<p class="meta">Emitida el {{date .IssuedAt}} · Estado: {{.Quote.Status}}{{if .PreparedBy}} · Preparada por {{.PreparedBy}}{{end}}</p>
<p><strong>Cliente:</strong> {{.Quote.CustomerName}} &lt;{{.Quote.CustomerEmail}}&gt;{{if .Quote.CustomerPhone}} · Tel. {{.Quote.CustomerPhone}}{{end}}</p>
<p><strong>Solicitud:</strong> {{.Quote.Description}}</p>
{{if .Quote.Service}}<p class="meta">Servicio: {{.Quote.Service}}{{if .Quote.Timeline}} · Plazo solicitado: {{.Quote.Timeline}}{{end}}</p>{{end}}
<table>
  <tr><th>Cantidad</th><th>Precio unitario</th><th>Total</th></tr>
  <tr>
    <td>{{.Quote.Quantity}}</td>
    <td>{{money .Quote.UnitPrice}}</td>
    <td class="total">{{money .Quote.Total}}</td>
  </tr>
</table>
{{if .Quote.ValidUntil}}<p class="meta">Válida hasta el {{dateptr .Quote.ValidUntil}}</p>{{end}}
{{if .Quote.Notes}}<p>{{.Quote.Notes}}</p>{{end}}
<h2>Términos y condiciones</h2>
<ul class="meta">
  <li>Los precios están expresados en pesos colombianos e incluyen IVA.</li>
  <li>La elaboración inicia una vez confirmado el 50% del valor total.</li>
  <li>Las piezas son hechas a mano; el acabado puede variar ligeramente respecto a las fotos de referencia.</li>
  <li>Esta cotización pierde validez en la fecha indicada.</li>
</ul>
</body>
</html>
`))

// QuoteDocument renders a printable HTML document for the quote,
// embedding a QR code that links back to its review page.
func QuoteDocument(q domain.Quote, preparedBy, reviewURL string) ([]byte, error) {
	png, err := qrcode.Encode(reviewURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encoding qr: %w", err)
	}
	data := QuoteDocData{
		Quote:      q,
		PreparedBy: preparedBy,
		IssuedAt:   time.Now(),
		QRDataURI:  template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
	}
	var buf bytes.Buffer
	if err := quoteTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering quote document: %w", err)
	}
	return buf.Bytes(), nil
}
