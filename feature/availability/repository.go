package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"placement-manager/feature/availability/models"

	"gorm.io/gorm"
)

// Repository is the data access boundary for availability queries and the
// expiration sweep. The service never assumes a query language beyond it.
type Repository interface {
	// ListItems returns the items matching the categorical filters,
	// ordered by id.
	ListItems(ctx context.Context, f Filter) ([]models.InventoryItem, error)
	// ListActiveReservations returns the active (not soft-deleted)
	// reservations for the given items, restricted to calendar windows
	// overlapping scope when scope is non-nil.
	ListActiveReservations(ctx context.Context, itemIDs []int, scope *models.CalendarWindow) ([]models.Reservation, error)
	// FindWindowForPeriod resolves a billing period reference to its
	// calendar window, or ErrPeriodNotFound.
	FindWindowForPeriod(ctx context.Context, periodID int) (*models.CalendarWindow, error)
	// DistinctValues lists the distinct non-empty values of one item
	// dimension column, sorted.
	DistinctValues(ctx context.Context, column string) ([]string, error)
	// ExpireStaleHolds soft-deletes every active reserved or bonus
	// reservation dated before cutoff, stamping now as the deletion
	// instant, and returns the number of affected rows.
	ExpireStaleHolds(ctx context.Context, now, cutoff time.Time) (int64, error)
}

// GormRepository implements Repository on a GORM connection.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a repository bound to db.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// holdStatuses are the tentative tags the sweeper may age out. Sold and
// blocked reservations never expire automatically.
var holdStatuses = []string{models.ReservationReserved, models.ReservationBonus}

var knownStatuses = []string{
	models.ReservationSold,
	models.ReservationReserved,
	models.ReservationBonus,
	models.ReservationBlocked,
}

func (r *GormRepository) ListItems(ctx context.Context, f Filter) ([]models.InventoryItem, error) {
	q := r.db.WithContext(ctx).Model(&models.InventoryItem{})

	if f.FurnitureType != "" {
		q = q.Where("furniture_type = ?", f.FurnitureType)
	}
	if f.Digital != nil {
		q = q.Where("digital = ?", *f.Digital)
	}
	if f.Municipality != "" {
		q = q.Where("municipality = ?", f.Municipality)
	}
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.Plaza != "" {
		q = q.Where("plaza = ?", f.Plaza)
	}
	if f.Tier != "" {
		q = q.Where("tier = ?", f.Tier)
	}

	var items []models.InventoryItem
	if err := q.Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (r *GormRepository) ListActiveReservations(ctx context.Context, itemIDs []int, scope *models.CalendarWindow) ([]models.Reservation, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	// Malformed status tags are rejected here, at the boundary, so the
	// resolver never sees them.
	q := r.db.WithContext(ctx).
		Where("inventory_item_id IN ?", itemIDs).
		Where("deleted_at IS NULL").
		Where("status IN ?", knownStatuses)

	if scope != nil {
		overlapping := r.db.Model(&models.CalendarWindow{}).
			Select("id").
			Where("deleted_at IS NULL").
			Where("start_date <= ? AND end_date >= ?", scope.EndDate, scope.StartDate)
		// Window-less reservations are not bounded in time and stay visible
		// in every scope.
		q = q.Where("calendar_window_id IS NULL OR calendar_window_id IN (?)", overlapping)
	}

	var reservations []models.Reservation
	if err := q.Order("id").Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

func (r *GormRepository) FindWindowForPeriod(ctx context.Context, periodID int) (*models.CalendarWindow, error) {
	var period models.BillingPeriod
	err := r.db.WithContext(ctx).First(&period, "id = ?", periodID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrPeriodNotFound, periodID)
	}
	if err != nil {
		return nil, fmt.Errorf("find billing period: %w", err)
	}

	var window models.CalendarWindow
	err = r.db.WithContext(ctx).
		First(&window, "id = ? AND deleted_at IS NULL", period.CalendarWindowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: period %d references window %d", ErrPeriodNotFound, periodID, period.CalendarWindowID)
	}
	if err != nil {
		return nil, fmt.Errorf("find calendar window: %w", err)
	}
	return &window, nil
}

// distinctColumns whitelists the item columns DistinctValues may touch.
var distinctColumns = map[string]bool{
	"furniture_type": true,
	"municipality":   true,
	"state":          true,
	"plaza":          true,
	"tier":           true,
}

func (r *GormRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if !distinctColumns[column] {
		return nil, fmt.Errorf("distinct values: unknown column %q", column)
	}

	var values []string
	err := r.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Distinct(column).
		Where(column+" <> ''").
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	return values, nil
}

func (r *GormRepository) ExpireStaleHolds(ctx context.Context, now, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("deleted_at IS NULL").
		Where("status IN ?", holdStatuses).
		Where("reserved_at < ?", cutoff).
		Update("deleted_at", now)
	if res.Error != nil {
		return 0, fmt.Errorf("expire stale holds: %w", res.Error)
	}
	return res.RowsAffected, nil
}
