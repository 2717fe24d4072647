package stock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AlmacenObra-api/internal/application/stock"
	"github.com/jhoicas/AlmacenObra-api/internal/domain"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/ledger"
	"github.com/jhoicas/AlmacenObra-api/internal/infrastructure/memory"
)

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func newFixture() (*memory.Store, *stock.ReceiveStockUseCase, *stock.IssueStockUseCase) {
	store := memory.NewStore()
	return store, stock.NewReceiveStockUseCase(store), stock.NewIssueStockUseCase(store)
}

func balanceOf(t *testing.T, store *memory.Store, description, unit string) decimal.Decimal {
	t.Helper()
	entries, err := store.ListAll()
	require.NoError(t, err)
	return ledger.BalanceOf(entries, description, unit)
}

// TestIssue_RecepcionYEntrega ciclo completo: recibir 100 bolsas de cemento,
// entregar 40 deja 60; entregar 60 más deja 0; entregar 1 más falla por stock
// insuficiente y el saldo no cambia.
func TestIssue_RecepcionYEntrega(t *testing.T) {
	store, receiveUC, issueUC := newFixture()
	ctx := context.Background()

	_, err := receiveUC.Receive(ctx, []stock.Line{{Description: "Cement", Qty: qty(100), Unit: "bags"}})
	require.NoError(t, err)

	_, err = issueUC.Issue(ctx, []stock.Line{{Description: "Cement", Qty: qty(40), Unit: "bags"}})
	require.NoError(t, err)
	assert.True(t, balanceOf(t, store, "Cement", "bags").Equal(qty(60)))

	_, err = issueUC.Issue(ctx, []stock.Line{{Description: "Cement", Qty: qty(60), Unit: "bags"}})
	require.NoError(t, err)
	assert.True(t, balanceOf(t, store, "Cement", "bags").IsZero())

	_, err = issueUC.Issue(ctx, []stock.Line{{Description: "Cement", Qty: qty(1), Unit: "bags"}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, balanceOf(t, store, "Cement", "bags").IsZero())
}

// TestIssue_EscenarioTMTBar reproduce el escenario de referencia: recibir 5 ton,
// entregar 3 (queda 2), reintentar 3 falla con disponible=2 solicitado=3 y el
// mensaje exacto que ve el aprobador.
func TestIssue_EscenarioTMTBar(t *testing.T) {
	store, receiveUC, issueUC := newFixture()
	ctx := context.Background()

	_, err := receiveUC.Receive(ctx, []stock.Line{{Description: "TMT Bar", Qty: qty(5), Unit: "ton"}})
	require.NoError(t, err)

	_, err = issueUC.Issue(ctx, []stock.Line{{Description: "TMT Bar", Qty: qty(3), Unit: "ton"}})
	require.NoError(t, err)
	assert.True(t, balanceOf(t, store, "TMT Bar", "ton").Equal(qty(2)))

	_, err = issueUC.Issue(ctx, []stock.Line{{Description: "TMT Bar", Qty: qty(3), Unit: "ton"}})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "TMT Bar", insufficient.Description)
	assert.Equal(t, "ton", insufficient.Unit)
	assert.True(t, insufficient.Available.Equal(qty(2)))
	assert.True(t, insufficient.Requested.Equal(qty(3)))
	assert.Equal(t, "Insufficient stock for TMT Bar (ton). Available 2. Requested 3.", err.Error())

	assert.True(t, balanceOf(t, store, "TMT Bar", "ton").Equal(qty(2)))
}

// TestIssue_AgregacionEntreLineas: dos líneas con la misma clave se validan
// contra su cantidad combinada, no por separado (saldo 10, dos líneas de 6 se
// rechazan aunque cada una sola pasaría).
func TestIssue_AgregacionEntreLineas(t *testing.T) {
	store, receiveUC, issueUC := newFixture()
	ctx := context.Background()

	_, err := receiveUC.Receive(ctx, []stock.Line{{Description: "Cement", Qty: qty(10), Unit: "bags"}})
	require.NoError(t, err)

	_, err = issueUC.Issue(ctx, []stock.Line{
		{Description: "Cement", Qty: qty(6), Unit: "bags"},
		{Description: "Cement", Qty: qty(6), Unit: "bags"},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	// La segunda línea produce el faltante: ya solo quedan 4 del snapshot.
	assert.True(t, insufficient.Available.Equal(qty(4)))
	assert.True(t, insufficient.Requested.Equal(qty(6)))

	assert.True(t, balanceOf(t, store, "Cement", "bags").Equal(qty(10)))
}

// TestIssue_TodoONada_LineaInvalida: una línea malformada rechaza el lote
// completo sin escribir ningún asiento.
func TestIssue_TodoONada_LineaInvalida(t *testing.T) {
	store, receiveUC, issueUC := newFixture()
	ctx := context.Background()

	_, err := receiveUC.Receive(ctx, []stock.Line{{Description: "Cement", Qty: qty(10), Unit: "bags"}})
	require.NoError(t, err)
	before, err := store.ListAll()
	require.NoError(t, err)

	_, err = issueUC.Issue(ctx, []stock.Line{
		{Description: "Cement", Qty: qty(2), Unit: "bags"},
		{Description: "", Qty: qty(1), Unit: "bags"},
	})
	require.Error(t, err)

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, 2, validation.Line)

	after, err := store.ListAll()
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after))
	assert.True(t, balanceOf(t, store, "Cement", "bags").Equal(qty(10)))
}

// TestIssue_TodoONada_SegundaLineaSinSaldo: si cualquier línea no es
// satisfacible, ninguna deducción se escribe, ni siquiera las de líneas con
// saldo de sobra.
func TestIssue_TodoONada_SegundaLineaSinSaldo(t *testing.T) {
	store, receiveUC, issueUC := newFixture()
	ctx := context.Background()

	_, err := receiveUC.Receive(ctx, []stock.Line{{Description: "Cement", Qty: qty(50), Unit: "bags"}})
	require.NoError(t, err)

	_, err = issueUC.Issue(ctx, []stock.Line{
		{Description: "Cement", Qty: qty(5), Unit: "bags"},
		{Description: "Sand", Qty: qty(1), Unit: "m3"},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, balanceOf(t, store, "Cement", "bags").Equal(qty(50)))
	assert.True(t, balanceOf(t, store, "Sand", "m3").IsZero())
}

// TestIssue_Validaciones recorre las violaciones por campo; cada una nombra la
// línea ofensora y encadena a ErrInvalidInput.
func TestIssue_Validaciones(t *testing.T) {
	cases := []struct {
		name   string
		lines  []stock.Line
		line   int
		reason string
	}{
		{
			name:   "descripción vacía",
			lines:  []stock.Line{{Description: "  ", Qty: qty(1), Unit: "bags"}},
			line:   1,
			reason: "description is required",
		},
		{
			name:   "unidad vacía",
			lines:  []stock.Line{{Description: "Cement", Qty: qty(1), Unit: ""}},
			line:   1,
			reason: "unit is required",
		},
		{
			name:   "cantidad cero",
			lines:  []stock.Line{{Description: "Cement", Qty: qty(0), Unit: "bags"}},
			line:   1,
			reason: "qty must be greater than zero",
		},
		{
			name:   "cantidad negativa",
			lines:  []stock.Line{{Description: "Cement", Qty: qty(-3), Unit: "bags"}},
			line:   1,
			reason: "qty must be greater than zero",
		},
		{
			name: "fecha inválida en segunda línea",
			lines: []stock.Line{
				{Description: "Cement", Qty: qty(1), Unit: "bags"},
				{Description: "Sand", Qty: qty(1), Unit: "m3", Date: "ayer"},
			},
			line:   2,
			reason: "date must be YYYY-MM-DD",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, _, issueUC := newFixture()

			_, err := issueUC.Issue(context.Background(), tc.lines)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			var validation *domain.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tc.line, validation.Line)
			assert.Equal(t, tc.reason, validation.Reason)

			entries, listErr := store.ListAll()
			require.NoError(t, listErr)
			assert.Empty(t, entries)
		})
	}
}

// TestIssue_AsientoNegativo: la deducción se guarda como -abs(cantidad) y el
// lote queda delante del log (más reciente primero).
func TestIssue_AsientoNegativo(t *testing.T) {
	_, receiveUC, issueUC := newFixture()
	ctx := context.Background()

	_, err := receiveUC.Receive(ctx, []stock.Line{{Description: "Cement", Qty: qty(10), Unit: "bags"}})
	require.NoError(t, err)

	result, err := issueUC.Issue(ctx, []stock.Line{{Description: "Cement", Qty: qty(4), Unit: "bags"}})
	require.NoError(t, err)
	require.Len(t, result, 2)

	newest := result[0]
	assert.True(t, newest.Quantity.Equal(qty(-4)))
	assert.Contains(t, newest.ID, "stock_")
}

// TestIssue_EntregasConcurrentesNoSobregiran: con saldo 10 y ocho entregas
// concurrentes de 3, exactamente tres pueden comprometerse; el saldo final nunca
// es negativo. Es la propiedad que el ámbito de exclusión del TxRunner protege.
func TestIssue_EntregasConcurrentesNoSobregiran(t *testing.T) {
	store, receiveUC, issueUC := newFixture()
	ctx := context.Background()

	_, err := receiveUC.Receive(ctx, []stock.Line{{Description: "Cement", Qty: qty(10), Unit: "bags"}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := issueUC.Issue(ctx, []stock.Line{{Description: "Cement", Qty: qty(3), Unit: "bags"}})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, successes)
	assert.True(t, balanceOf(t, store, "Cement", "bags").Equal(qty(1)))
}
