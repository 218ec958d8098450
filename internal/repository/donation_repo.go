package repository

import (
	"jogoo/internal/models"

	"gorm.io/gorm"
)

type DonationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(d *models.Donation) error {
	return r.db.Create(d).Error
}

func (r *DonationRepository) GetByID(id uint) (*models.Donation, error) {
	var d models.Donation
	err := r.db.First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DonationRepository) GetByCheckoutRequestID(checkoutRequestID string) (*models.Donation, error) {
	var d models.Donation
	err := r.db.Where("checkout_request_id = ?", checkoutRequestID).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// MarkPaid transitions the Pending donation for checkoutRequestID to Paid,
// overwriting the donor-declared amount and phone with the provider-reported
// values. The status guard in the WHERE clause makes duplicate callback
// deliveries match zero rows. Returns the number of rows updated.
func (r *DonationRepository) MarkPaid(checkoutRequestID string, amount int64, phone, receipt, transactionDate string) (int64, error) {
	res := r.db.Model(&models.Donation{}).
		Where("checkout_request_id = ? AND status = ?", checkoutRequestID, models.DonationStatusPending).
		Updates(map[string]interface{}{
			"status":               models.DonationStatusPaid,
			"amount":               amount,
			"phone":                phone,
			"mpesa_receipt_number": receipt,
			"transaction_date":     transactionDate,
		})
	return res.RowsAffected, res.Error
}

// List returns donations newest first, optionally filtered by status.
func (r *DonationRepository) List(status string, limit, offset int) ([]models.Donation, int64, error) {
	q := r.db.Model(&models.Donation{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var donations []models.Donation
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&donations).Error
	return donations, total, err
}

type DonationTotals struct {
	TotalCount   int64 `json:"total_count"`
	PendingCount int64 `json:"pending_count"`
	PaidCount    int64 `json:"paid_count"`
	PaidAmount   int64 `json:"paid_amount"`
}

func (r *DonationRepository) Totals() (*DonationTotals, error) {
	var t DonationTotals
	if err := r.db.Model(&models.Donation{}).Count(&t.TotalCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Donation{}).Where("status = ?", models.DonationStatusPending).Count(&t.PendingCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Donation{}).Where("status = ?", models.DonationStatusPaid).Count(&t.PaidCount).Error; err != nil {
		return nil, err
	}
	err := r.db.Model(&models.Donation{}).
		Where("status = ?", models.DonationStatusPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&t.PaidAmount).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}
