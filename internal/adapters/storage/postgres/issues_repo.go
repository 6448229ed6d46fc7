package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"lab-equipment-maintenance/internal/domain/issues"
)

type IssuesRepo struct {
	db *sql.DB
}

func NewIssuesRepo(db *sql.DB) *IssuesRepo {
	return &IssuesRepo{db: db}
}

func (r *IssuesRepo) Create(ctx context.Context, ir issues.IssueReport) error {
	atts, err := json.Marshal(ir.Attachments)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO issue_reports (
			id, equipment_id, reported_by, date_time,
			description, severity, status, attachments
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		ir.ID,
		ir.EquipmentID,
		ir.ReportedBy,
		ir.DateTime,
		ir.Description,
		string(ir.Severity),
		string(ir.Status),
		atts,
	)
	return err
}

func (r *IssuesRepo) Update(ctx context.Context, ir issues.IssueReport) error {
	atts, err := json.Marshal(ir.Attachments)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE issue_reports
		SET description = $2, severity = $3, status = $4, attachments = $5
		WHERE id = $1
	`,
		ir.ID,
		ir.Description,
		string(ir.Severity),
		string(ir.Status),
		atts,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *IssuesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM issue_reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *IssuesRepo) GetByID(ctx context.Context, id string) (issues.IssueReport, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, equipment_id, reported_by, date_time,
			description, severity, status, attachments
		FROM issue_reports
		WHERE id = $1
	`, id)

	ir, err := scanIssue(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return issues.IssueReport{}, ErrNotFound
		}
		return issues.IssueReport{}, err
	}
	return ir, nil
}

func (r *IssuesRepo) List(ctx context.Context) ([]issues.IssueReport, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, equipment_id, reported_by, date_time,
			description, severity, status, attachments
		FROM issue_reports
		ORDER BY date_time DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]issues.IssueReport, 0)
	for rows.Next() {
		ir, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ir)
	}
	return out, rows.Err()
}

func scanIssue(row rowScanner) (issues.IssueReport, error) {
	var ir issues.IssueReport
	var atts []byte

	if err := row.Scan(
		&ir.ID,
		&ir.EquipmentID,
		&ir.ReportedBy,
		&ir.DateTime,
		&ir.Description,
		&ir.Severity,
		&ir.Status,
		&atts,
	); err != nil {
		return issues.IssueReport{}, err
	}

	if len(atts) > 0 {
		if err := json.Unmarshal(atts, &ir.Attachments); err != nil {
			return issues.IssueReport{}, err
		}
	}

	return ir, nil
}
