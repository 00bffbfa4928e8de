package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-erp-api/internal/application/inventory"
	"github.com/jhoicas/negocio-erp-api/internal/domain"
	"github.com/jhoicas/negocio-erp-api/internal/domain/entity"
	"github.com/jhoicas/negocio-erp-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore guarda stock y movimientos; fakeTxRunner serializa las
// transacciones con un mutex, igual que el bloqueo de fila en Postgres
// serializa dos escrituras sobre el mismo producto.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu        sync.Mutex
	stocks    map[string]entity.StockRecord
	movements []*entity.StockMovement

	// staleGets hace que los próximos N GetForUpdate devuelvan nil aunque el
	// registro exista, como READ COMMITTED cuando el insert concurrente de la
	// fila aún no era visible al leer.
	staleGets int
}

func newFakeStore() *fakeStore {
	return &fakeStore{stocks: make(map[string]entity.StockRecord)}
}

type fakeStockRepo struct{ store *fakeStore }

func (r *fakeStockRepo) Get(productID string) (*entity.StockRecord, error) {
	return r.GetForUpdate(productID)
}

func (r *fakeStockRepo) GetForUpdate(productID string) (*entity.StockRecord, error) {
	if r.store.staleGets > 0 {
		r.store.staleGets--
		return nil, nil
	}
	rec, ok := r.store.stocks[productID]
	if !ok {
		return nil, nil
	}
	// Copia, como el scan de una fila real.
	return &rec, nil
}

func (r *fakeStockRepo) Create(record *entity.StockRecord) error {
	// Un registro por producto, como ON CONFLICT (product_id) DO NOTHING.
	if _, ok := r.store.stocks[record.ProductID]; ok {
		return domain.ErrDuplicate
	}
	r.store.stocks[record.ProductID] = *record
	return nil
}

func (r *fakeStockRepo) UpdateQuantity(record *entity.StockRecord) error {
	r.store.stocks[record.ProductID] = *record
	return nil
}

func (r *fakeStockRepo) ListWithProduct(limit, offset int) ([]*entity.StockRecord, []*entity.Product, error) {
	var records []*entity.StockRecord
	for _, rec := range r.store.stocks {
		cp := rec
		records = append(records, &cp)
	}
	return records, make([]*entity.Product, len(records)), nil
}

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.store.movements = append(r.store.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) List(limit, offset int) ([]*entity.StockMovement, error) {
	return r.store.movements, nil
}

func (r *fakeMovementRepo) SumByProduct(productID string) (int64, error) {
	var sum int64
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			sum += m.SignedQuantity
		}
	}
	return sum, nil
}

type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Snapshot para simular rollback si fn falla.
	before := make(map[string]entity.StockRecord, len(r.store.stocks))
	for k, v := range r.store.stocks {
		before[k] = v
	}
	movLen := len(r.store.movements)

	err := fn(&fakeStockRepo{store: r.store}, &fakeMovementRepo{store: r.store})
	if err != nil {
		r.store.stocks = before
		r.store.movements = r.store.movements[:movLen]
	}
	return err
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if onlyActive && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
func (r *fakeProductRepo) Deactivate(id string) error {
	if p, ok := r.products[id]; ok {
		p.IsActive = false
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const testActorID = "00000000-0000-0000-0000-0000000000aa"

func newTestLedger(t *testing.T) (*inventory.LedgerUseCase, *fakeStore, *entity.Product) {
	t.Helper()
	store := newFakeStore()
	product := &entity.Product{
		ID:       uuid.New().String(),
		SKU:      "SKU-001",
		Name:     "Teclado mecánico",
		Category: entity.CategoryElectronics,
		Price:    decimal.NewFromInt(50),
		IsActive: true,
	}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{product.ID: product}}
	uc := inventory.NewLedgerUseCase(
		&fakeTxRunner{store: store},
		productRepo,
		&fakeStockRepo{store: store},
		&fakeMovementRepo{store: store},
		inventory.StockDefaults{MinStock: 5, MaxStock: 100},
	)
	return uc, store, product
}

func apply(t *testing.T, uc *inventory.LedgerUseCase, productID, kind string, qty int64) (*entity.StockRecord, *entity.StockMovement, error) {
	t.Helper()
	return uc.ApplyMovement(context.Background(), testActorID, inventory.MovementInput{
		ProductID: productID,
		Kind:      kind,
		Quantity:  qty,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas y creación perezosa del registro
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaCreaRegistroConUmbralesPorDefecto(t *testing.T) {
	uc, store, product := newTestLedger(t)

	record, movement, err := apply(t, uc, product.ID, entity.MovementKindEntry, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(10), record.Quantity)
	assert.Equal(t, int64(5), record.MinStock, "umbral mínimo por defecto")
	assert.Equal(t, int64(100), record.MaxStock, "umbral máximo por defecto")
	assert.Equal(t, int64(10), movement.SignedQuantity)
	assert.Equal(t, testActorID, movement.ActorID)
	assert.Len(t, store.movements, 1)
}

func TestApplyMovement_AjustePositivoSinRegistroCreaRegistro(t *testing.T) {
	uc, _, product := newTestLedger(t)

	record, movement, err := apply(t, uc, product.ID, entity.MovementKindAdjustment, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), record.Quantity)
	assert.Equal(t, int64(7), movement.SignedQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas y no-negatividad
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_SalidaDescuentaStock(t *testing.T) {
	uc, _, product := newTestLedger(t)
	_, _, err := apply(t, uc, product.ID, entity.MovementKindEntry, 10)
	require.NoError(t, err)

	record, movement, err := apply(t, uc, product.ID, entity.MovementKindExit, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), record.Quantity)
	assert.Equal(t, int64(-4), movement.SignedQuantity, "las salidas se registran con signo negativo")
}

func TestApplyMovement_SalidaSinRegistro_ErrNoStock(t *testing.T) {
	uc, store, product := newTestLedger(t)

	_, _, err := apply(t, uc, product.ID, entity.MovementKindExit, 1)
	assert.ErrorIs(t, err, domain.ErrNoStock)
	assert.Empty(t, store.movements, "una salida rechazada no deja movimiento")
}

func TestApplyMovement_SalidaInsuficiente_SeRechazaSinEscribir(t *testing.T) {
	uc, store, product := newTestLedger(t)
	_, _, err := apply(t, uc, product.ID, entity.MovementKindEntry, 3)
	require.NoError(t, err)

	_, _, err = apply(t, uc, product.ID, entity.MovementKindExit, 4)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(4), insufficient.Requested)
	assert.Equal(t, int64(3), insufficient.Available)

	// El rechazo no deja rastro: ni movimiento nuevo ni cambio de cantidad.
	assert.Len(t, store.movements, 1)
	assert.Equal(t, int64(3), store.stocks[product.ID].Quantity)
}

func TestApplyMovement_AjusteNegativoInsuficiente_SeRechaza(t *testing.T) {
	uc, _, product := newTestLedger(t)
	_, _, err := apply(t, uc, product.ID, entity.MovementKindEntry, 5)
	require.NoError(t, err)

	_, _, err = apply(t, uc, product.ID, entity.MovementKindAdjustment, -8)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(8), insufficient.Requested)
	assert.Equal(t, int64(5), insufficient.Available)
}

func TestApplyMovement_SalidaExacta_DejaCero(t *testing.T) {
	uc, _, product := newTestLedger(t)
	_, _, err := apply(t, uc, product.ID, entity.MovementKindEntry, 5)
	require.NoError(t, err)

	record, _, err := apply(t, uc, product.ID, entity.MovementKindExit, 5)
	require.NoError(t, err, "dejar el stock exactamente en cero es válido")
	assert.Equal(t, int64(0), record.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradasInvalidas(t *testing.T) {
	uc, _, product := newTestLedger(t)

	cases := []struct {
		name string
		kind string
		qty  int64
	}{
		{"kind desconocido", "transfer", 5},
		{"entry con cantidad cero", entity.MovementKindEntry, 0},
		{"entry con cantidad negativa", entity.MovementKindEntry, -5},
		{"exit con cantidad cero", entity.MovementKindExit, 0},
		{"exit con cantidad negativa", entity.MovementKindExit, -2},
		{"adjustment con delta cero", entity.MovementKindAdjustment, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := apply(t, uc, product.ID, tc.kind, tc.qty)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestApplyMovement_ProductoInexistente_ErrNotFound(t *testing.T) {
	uc, _, _ := newTestLedger(t)
	_, _, err := apply(t, uc, uuid.New().String(), entity.MovementKindEntry, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_ProductoInactivo_SeRechaza(t *testing.T) {
	uc, _, product := newTestLedger(t)
	product.IsActive = false

	_, _, err := apply(t, uc, product.ID, entity.MovementKindEntry, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante del libro: Σ signed_quantity == cantidad del registro
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_SumaDeMovimientosIgualaCantidad(t *testing.T) {
	uc, store, product := newTestLedger(t)

	steps := []struct {
		kind string
		qty  int64
	}{
		{entity.MovementKindEntry, 20},
		{entity.MovementKindExit, 7},
		{entity.MovementKindAdjustment, -3},
		{entity.MovementKindEntry, 5},
		{entity.MovementKindAdjustment, 2},
	}
	for _, s := range steps {
		_, _, err := apply(t, uc, product.ID, s.kind, s.qty)
		require.NoError(t, err)
	}

	movRepo := &fakeMovementRepo{store: store}
	sum, err := movRepo.SumByProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, store.stocks[product.ID].Quantity, sum,
		"la suma del libro debe igualar la cantidad del registro")
	assert.Equal(t, int64(17), sum)
}

// Dos primeras entradas concurrentes para el mismo producto: SELECT FOR UPDATE
// sobre una fila inexistente no bloquea nada, así que ambas pueden ver la fila
// ausente. Solo un insert gana; la otra transacción debe releer el registro ya
// confirmado y sumar sobre él, nunca crear un segundo registro.
func TestApplyMovement_PrimerasEntradasConcurrentes_UnSoloRegistro(t *testing.T) {
	uc, store, product := newTestLedger(t)

	// La "otra" transacción ya insertó y confirmó su registro.
	_, _, err := apply(t, uc, product.ID, entity.MovementKindEntry, 5)
	require.NoError(t, err)

	// Esta transacción leyó antes de que ese insert fuera visible.
	store.staleGets = 1
	record, _, err := apply(t, uc, product.ID, entity.MovementKindEntry, 5)
	require.NoError(t, err)

	assert.Len(t, store.stocks, 1, "un solo registro de stock por producto")
	assert.Equal(t, int64(10), record.Quantity)
	assert.Equal(t, int64(10), store.stocks[product.ID].Quantity)

	movRepo := &fakeMovementRepo{store: store}
	sum, err := movRepo.SumByProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), sum, "la suma del libro sigue igualando la cantidad")
}

// Dos salidas concurrentes que juntas exceden el stock: exactamente una debe
// pasar. Con 5 unidades y dos salidas de 4, el resultado final es 1, nunca -3.
func TestApplyMovement_SalidasConcurrentes_SoloUnaPasa(t *testing.T) {
	uc, store, product := newTestLedger(t)
	_, _, err := apply(t, uc, product.ID, entity.MovementKindEntry, 5)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = apply(t, uc, product.ID, entity.MovementKindExit, 4)
		}(i)
	}
	wg.Wait()

	var okCount, insufficientCount int
	for _, err := range errs {
		if err == nil {
			okCount++
			continue
		}
		var insufficient *domain.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		insufficientCount++
	}
	assert.Equal(t, 1, okCount, "exactamente una salida debe pasar")
	assert.Equal(t, 1, insufficientCount)
	assert.Equal(t, int64(1), store.stocks[product.ID].Quantity)

	movRepo := &fakeMovementRepo{store: store}
	sum, err := movRepo.SumByProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sum)
}
