package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/murithi/rentledger/internal/domain"
	"github.com/murithi/rentledger/internal/repository"
	customError "github.com/murithi/rentledger/pkg/errors"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf/v2"
)

// ReportService aggregates the payment log into report buckets and renders
// payment receipts.
type ReportService struct {
	paymentRepo repository.PaymentRepository
}

func NewReportService(paymentRepo repository.PaymentRepository) *ReportService {
	return &ReportService{paymentRepo: paymentRepo}
}

// Summary aggregates all payments into daily, monthly or yearly buckets
func (s *ReportService) Summary(ctx context.Context, granularity string) (*domain.ReportResponse, error) {
	switch granularity {
	case domain.ReportDaily, domain.ReportMonthly, domain.ReportYearly:
	default:
		return nil, customError.WrapValidation(
			fmt.Sprintf("unknown report granularity %q", granularity), nil,
		)
	}

	rows, err := s.paymentRepo.Report(ctx, granularity)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if rows == nil {
		rows = []*domain.ReportRow{}
	}

	return &domain.ReportResponse{
		Granularity: granularity,
		Rows:        rows,
	}, nil
}

// RenderReceipt produces a PDF receipt for a recorded payment
func (s *ReportService) RenderReceipt(ctx context.Context, paymentID uuid.UUID) ([]byte, error) {
	record, err := s.paymentRepo.GetRecord(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(paymentID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Murithi's Homes - Payment Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Receipt No: %s", record.ID), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Payment details box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Payment Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("House: %d", record.HouseNumber), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Payer: %s", record.TenantName), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Period: %d-%02d", record.TargetYear, record.TargetMonth), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Method: %s", record.Method), "RB", 1, "L", false, 0, "")

	txRef := "N/A"
	if record.TxRef != nil && *record.TxRef != "" {
		txRef = *record.TxRef
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Ref: %s", txRef), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Paid at: %s", record.PaidAt.Format("02-Jan-2006 03:04 PM")), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Amount
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(200, 255, 200)
	pdf.CellFormat(190, 10, fmt.Sprintf("Amount: KES %s", record.Amount.String()), "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return buf.Bytes(), nil
}
