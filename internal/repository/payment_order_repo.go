package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"astroconsult/internal/domain"
)

var ErrDuplicateOrder = errors.New("payment order already exists")

type PaymentOrderRepository struct {
	db *gorm.DB
}

func NewPaymentOrderRepository(db *gorm.DB) *PaymentOrderRepository {
	return &PaymentOrderRepository{db: db}
}

func (r *PaymentOrderRepository) Create(ctx context.Context, p *domain.PaymentOrder) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateOrder
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateOrder
		}
		return err
	}
	return nil
}

func (r *PaymentOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	var p domain.PaymentOrder
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentOrderRepository) GetBySessionID(ctx context.Context, sessionID string) ([]domain.PaymentOrder, error) {
	var out []domain.PaymentOrder
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// MarkPaidIdempotent flips the order to paid exactly once. The returned bool
// reports whether this call performed the transition; a repeated completion
// callback sees false and must not produce side effects again.
func (r *PaymentOrderRepository) MarkPaidIdempotent(ctx context.Context, orderID, paymentID, signature string, paidAt time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// sqlite has no row locks; transaction-level locking is enough there
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var p domain.PaymentOrder
		if err := q.Where("order_id = ?", orderID).First(&p).Error; err != nil {
			return err
		}
		if p.Status == domain.OrderPaid {
			changed = false
			return nil
		}
		changed = true
		return tx.Model(&domain.PaymentOrder{}).
			Where("order_id = ?", orderID).
			Updates(map[string]interface{}{
				"status":     domain.OrderPaid,
				"payment_id": paymentID,
				"signature":  signature,
				"paid_at":    paidAt,
			}).Error
	})
	return changed, err
}

// MarkFailed records a terminal failure unless the order already settled as
// paid.
func (r *PaymentOrderRepository) MarkFailed(ctx context.Context, orderID, reason string) error {
	return r.markTerminal(ctx, orderID, domain.OrderFailed, reason)
}

func (r *PaymentOrderRepository) MarkCancelled(ctx context.Context, orderID string) error {
	return r.markTerminal(ctx, orderID, domain.OrderCancelled, "dismissed by user")
}

func (r *PaymentOrderRepository) markTerminal(ctx context.Context, orderID string, status domain.PaymentOrderStatus, reason string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.PaymentOrder{}).
		Where("order_id = ? AND status <> ?", orderID, domain.OrderPaid).
		Updates(map[string]interface{}{
			"status":         status,
			"failure_reason": reason,
		})
	if res.Error != nil {
		return res.Error
	}
	var existing int64
	if err := r.db.WithContext(ctx).Model(&domain.PaymentOrder{}).Where("order_id = ?", orderID).Count(&existing).Error; err != nil {
		return err
	}
	if existing == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
