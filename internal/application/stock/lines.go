package stock

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/AlmacenObra-api/internal/domain"
)

// Line línea de material solicitada (entrada directa, entrega o alta de envío).
type Line struct {
	ItemCode    string
	Description string
	Qty         decimal.Decimal
	Unit        string
	Date        string // YYYY-MM-DD; vacío = hoy
}

// dateLayout formato de fecha calendario en el cable (el mismo del front original).
const dateLayout = "2006-01-02"

// normalizedLine línea ya validada: campos recortados y fecha resuelta.
type normalizedLine struct {
	ItemCode    string
	Description string
	Qty         decimal.Decimal
	Unit        string
	Date        time.Time
}

// validateLines recorta y valida cada línea. Cualquier violación rechaza la
// solicitud completa con ValidationError nombrando la línea ofensora (base 1);
// el caller no debe escribir ningún asiento en ese caso.
func validateLines(lines []Line, today time.Time) ([]normalizedLine, error) {
	normalized := make([]normalizedLine, 0, len(lines))
	for i, l := range lines {
		n := normalizedLine{
			ItemCode:    strings.TrimSpace(l.ItemCode),
			Description: strings.TrimSpace(l.Description),
			Qty:         l.Qty,
			Unit:        strings.TrimSpace(l.Unit),
			Date:        today,
		}
		if n.Description == "" {
			return nil, &domain.ValidationError{Line: i + 1, Reason: "description is required"}
		}
		if n.Unit == "" {
			return nil, &domain.ValidationError{Line: i + 1, Reason: "unit is required"}
		}
		if !l.Qty.GreaterThan(decimal.Zero) {
			return nil, &domain.ValidationError{Line: i + 1, Reason: "qty must be greater than zero"}
		}
		if raw := strings.TrimSpace(l.Date); raw != "" {
			date, err := time.Parse(dateLayout, raw)
			if err != nil {
				return nil, &domain.ValidationError{Line: i + 1, Reason: "date must be YYYY-MM-DD"}
			}
			n.Date = date
		}
		normalized = append(normalized, n)
	}
	return normalized, nil
}

// newEntryID genera un id ordenable por tiempo con sufijo aleatorio, único por el
// fragmento de UUID: stock_<millis>_<sufijo>.
func newEntryID(now time.Time) string {
	return fmt.Sprintf("stock_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
}

// newShipmentID igual que newEntryID pero con prefijo de envío.
func newShipmentID(now time.Time) string {
	return fmt.Sprintf("ship_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
}
