package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/tu-usuario/medtrack-api/internal/domain/entity"
	"github.com/tu-usuario/medtrack-api/internal/domain/repository"
)

// Fakes en memoria para los casos de uso; el TxRunner falso ejecuta el
// callback contra los mismos fakes, sin transacción real.

type fakeSpecRepo struct {
	items []*entity.SpecItem // cada uno con Direction en dirección paralela
	dirs  []string
}

func (f *fakeSpecRepo) add(item *entity.SpecItem, direction string) {
	f.items = append(f.items, item)
	f.dirs = append(f.dirs, direction)
}

func (f *fakeSpecRepo) ListByDate(_ context.Context, companyID string, date time.Time, direction string) ([]*entity.SpecItem, error) {
	var out []*entity.SpecItem
	for i, it := range f.items {
		if it.CompanyID == companyID && it.Date.Equal(date) && f.dirs[i] == direction {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeSpecRepo) BulkUpsert(_ context.Context, companyID string, date time.Time, direction string, items []*entity.SpecItem) (int, int, error) {
	for _, it := range items {
		it.CompanyID = companyID
		it.Date = date
		f.add(it, direction)
	}
	return len(items), 0, nil
}

type fakeInvRepo struct {
	rows      []*entity.InventoryRow
	updateErr error
}

func (f *fakeInvRepo) rowsFor(companyID string, date time.Time) []*entity.InventoryRow {
	var out []*entity.InventoryRow
	for _, r := range f.rows {
		if r.CompanyID == companyID && r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeInvRepo) SnapshotByCompanyDate(_ context.Context, companyID string, date time.Time) (map[entity.ItemKey]*entity.InventoryRow, error) {
	snap := make(map[entity.ItemKey]*entity.InventoryRow)
	for _, r := range f.rowsFor(companyID, date) {
		snap[r.Key()] = r
	}
	return snap, nil
}

func (f *fakeInvRepo) SnapshotForUpdate(ctx context.Context, companyID string, date time.Time) (map[entity.ItemKey]*entity.InventoryRow, error) {
	return f.SnapshotByCompanyDate(ctx, companyID, date)
}

func (f *fakeInvRepo) ListByCompanyDate(_ context.Context, companyID string, date time.Time) ([]*entity.InventoryRow, error) {
	return f.rowsFor(companyID, date), nil
}

func (f *fakeInvRepo) LatestDateBefore(_ context.Context, companyID string, before time.Time) (*time.Time, error) {
	var latest *time.Time
	for _, r := range f.rows {
		if r.CompanyID != companyID || !r.Date.Before(before) {
			continue
		}
		if latest == nil || r.Date.After(*latest) {
			d := r.Date
			latest = &d
		}
	}
	return latest, nil
}

func (f *fakeInvRepo) BulkUpdate(_ context.Context, rows []*entity.InventoryRow) (int, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	return len(rows), nil
}

func (f *fakeInvRepo) BulkInsert(_ context.Context, rows []*entity.InventoryRow) (int, error) {
	f.rows = append(f.rows, rows...)
	return len(rows), nil
}

func (f *fakeInvRepo) BulkInsertMissing(_ context.Context, rows []*entity.InventoryRow) (int, error) {
	created := 0
	for _, row := range rows {
		exists := false
		for _, r := range f.rowsFor(row.CompanyID, row.Date) {
			if r.Key() == row.Key() {
				exists = true
				break
			}
		}
		if !exists {
			f.rows = append(f.rows, row)
			created++
		}
	}
	return created, nil
}

type fakeDiscRepo struct {
	records []*entity.Discrepancy
}

func (f *fakeDiscRepo) BulkInsert(_ context.Context, records []*entity.Discrepancy) (int, error) {
	f.records = append(f.records, records...)
	return len(records), nil
}

func (f *fakeDiscRepo) ListByDate(_ context.Context, companyID string, date time.Time) ([]*entity.Discrepancy, error) {
	var out []*entity.Discrepancy
	for _, d := range f.records {
		if d.CompanyID == companyID && d.Date.Equal(date) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDiscRepo) DeleteByDate(_ context.Context, companyID string, date time.Time) (int, error) {
	kept := f.records[:0]
	deleted := 0
	for _, d := range f.records {
		if d.CompanyID == companyID && d.Date.Equal(date) {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	f.records = kept
	return deleted, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo(ids ...string) *fakeCompanyRepo {
	m := make(map[string]*entity.Company, len(ids))
	for _, id := range ids {
		m[id] = &entity.Company{ID: id, Name: "Compañía " + id, Code: "C-" + id}
	}
	return &fakeCompanyRepo{companies: m}
}

func (f *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	f.companies[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.companies[id], nil
}

func (f *fakeCompanyRepo) GetByNameAndCode(_ context.Context, name, code string) (*entity.Company, error) {
	for _, c := range f.companies {
		if c.Name == name && c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyRepo) List(_ context.Context) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range f.companies {
		out = append(out, c)
	}
	return out, nil
}

type fakeTxRunner struct {
	specRepo *fakeSpecRepo
	invRepo  *fakeInvRepo
	discRepo *fakeDiscRepo
	beginErr error
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	specRepo repository.SpecItemRepository,
	invRepo repository.InventoryRepository,
	discRepo repository.DiscrepancyRepository,
) error) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	return fn(f.specRepo, f.invRepo, f.discRepo)
}

var errPersistencia = errors.New("fallo de persistencia simulado")
