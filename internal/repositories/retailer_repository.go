package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"callcenter/internal/models"
)

// RetailerRepository is the retailer directory: read-mostly profiles looked up by
// their external retailer id.
type RetailerRepository interface {
	Create(ctx context.Context, r *models.Retailer) error
	Update(ctx context.Context, r *models.Retailer) error
	GetByRetailerID(ctx context.Context, retailerID string) (*models.Retailer, error)
	List(ctx context.Context, agentID *int64) ([]models.Retailer, error)
	UpdateLastCallDate(ctx context.Context, retailerID string, at time.Time) error
}

type retailerRepository struct {
	db *sql.DB
}

func NewRetailerRepository(db *sql.DB) RetailerRepository {
	return &retailerRepository{db: db}
}

const retailerColumns = `id, retailer_id, name, mobile, project_name, agent_id, balance, target, achieved,
       credit_score, account_status, cash_in_mode, device_model, wallet_status, recharge_method,
       preferred_collection_method, priority, comment, last_recharge_date, last_call_date, created_at`

func scanRetailer(s rowScanner, r *models.Retailer) error {
	var (
		agentID  sql.NullInt64
		balance  sql.NullFloat64
		priority sql.NullString
		recharge sql.NullTime
		called   sql.NullTime
	)
	if err := s.Scan(
		&r.ID, &r.RetailerID, &r.Name, &r.Mobile, &r.ProjectName, &agentID, &balance, &r.Target, &r.Achieved,
		&r.CreditScore, &r.AccountStatus, &r.CashInMode, &r.DeviceModel, &r.WalletStatus, &r.RechargeMethod,
		&r.PreferredCollection, &priority, &r.Comment, &recharge, &called, &r.CreatedAt,
	); err != nil {
		return err
	}
	r.AgentID, r.Balance, r.Priority, r.LastRechargeDate, r.LastCallDate = nil, nil, nil, nil, nil
	if agentID.Valid {
		r.AgentID = &agentID.Int64
	}
	if balance.Valid {
		r.Balance = &balance.Float64
	}
	if priority.Valid {
		p := models.TaskPriority(priority.String)
		r.Priority = &p
	}
	if recharge.Valid {
		r.LastRechargeDate = &recharge.Time
	}
	if called.Valid {
		r.LastCallDate = &called.Time
	}
	return nil
}

func (r *retailerRepository) Create(ctx context.Context, ret *models.Retailer) error {
	const q = `
		INSERT INTO retailers (
			retailer_id, name, mobile, project_name, agent_id, balance, target, achieved,
			credit_score, account_status, cash_in_mode, device_model, wallet_status, recharge_method,
			preferred_collection_method, priority, comment, last_recharge_date, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, q,
		ret.RetailerID, ret.Name, ret.Mobile, ret.ProjectName, ret.AgentID, ret.Balance, ret.Target, ret.Achieved,
		ret.CreditScore, ret.AccountStatus, ret.CashInMode, ret.DeviceModel, ret.WalletStatus, ret.RechargeMethod,
		ret.PreferredCollection, ret.Priority, ret.Comment, ret.LastRechargeDate, ret.CreatedAt,
	).Scan(&ret.ID)
	if err != nil {
		return fmt.Errorf("create retailer: %w", err)
	}
	return nil
}

func (r *retailerRepository) Update(ctx context.Context, ret *models.Retailer) error {
	const q = `
		UPDATE retailers SET
			name=$1, mobile=$2, project_name=$3, agent_id=$4, balance=$5, target=$6, achieved=$7,
			credit_score=$8, account_status=$9, cash_in_mode=$10, device_model=$11, wallet_status=$12,
			recharge_method=$13, preferred_collection_method=$14, priority=$15, comment=$16,
			last_recharge_date=$17
		WHERE retailer_id=$18`
	_, err := r.db.ExecContext(ctx, q,
		ret.Name, ret.Mobile, ret.ProjectName, ret.AgentID, ret.Balance, ret.Target, ret.Achieved,
		ret.CreditScore, ret.AccountStatus, ret.CashInMode, ret.DeviceModel, ret.WalletStatus,
		ret.RechargeMethod, ret.PreferredCollection, ret.Priority, ret.Comment,
		ret.LastRechargeDate, ret.RetailerID,
	)
	if err != nil {
		return fmt.Errorf("update retailer: %w", err)
	}
	return nil
}

func (r *retailerRepository) GetByRetailerID(ctx context.Context, retailerID string) (*models.Retailer, error) {
	q := `SELECT ` + retailerColumns + ` FROM retailers WHERE retailer_id=$1`
	var ret models.Retailer
	if err := scanRetailer(r.db.QueryRowContext(ctx, q, retailerID), &ret); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get retailer: %w", err)
	}
	return &ret, nil
}

func (r *retailerRepository) List(ctx context.Context, agentID *int64) ([]models.Retailer, error) {
	q := `SELECT ` + retailerColumns + ` FROM retailers`
	args := []interface{}{}
	if agentID != nil {
		q += ` WHERE agent_id=$1`
		args = append(args, *agentID)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list retailers: %w", err)
	}
	defer rows.Close()

	var res []models.Retailer
	for rows.Next() {
		var ret models.Retailer
		if err := scanRetailer(rows, &ret); err != nil {
			return nil, fmt.Errorf("scan retailer: %w", err)
		}
		res = append(res, ret)
	}
	return res, rows.Err()
}

func (r *retailerRepository) UpdateLastCallDate(ctx context.Context, retailerID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE retailers SET last_call_date=$1 WHERE retailer_id=$2`, at, retailerID)
	if err != nil {
		return fmt.Errorf("update retailer last call: %w", err)
	}
	return nil
}
