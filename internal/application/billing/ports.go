package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avolkov/bills-api/internal/domain/entity"
)

// ReceiptPage carries all the data rendered onto one receipt page: the
// payer, the computed charge table, both bank parties and the QR payload.
// Visual styling belongs to the renderer; this is the data contract.
type ReceiptPage struct {
	Account      *entity.Account
	HouseAddress string
	Lines        []entity.ChargeLineItem
	Placeholder  string
	Total        decimal.Decimal
	QRPayload    string
	PeriodLabel  string
	Executor     entity.BankParty
	Recipient    entity.BankParty
}

// Page is an opaque rendered page. It is produced by a PageRenderer and
// consumed only by the DocumentBuilder of the same implementation, the way
// driver-specific values travel through database/sql.
type Page any

// PageRenderer renders one receipt page. The context carries the per-page
// timeout; a rendering failure fails the whole house.
type PageRenderer interface {
	RenderPage(ctx context.Context, page *ReceiptPage) (Page, error)
}

// DocumentBuilder assembles the ordered page set of one house into the
// bytes of a multi-page document.
type DocumentBuilder interface {
	BuildDocument(ctx context.Context, pages []Page) ([]byte, error)
}

// ArtifactStore writes and inspects per-house output artifacts.
// PageCount reports (0, false, nil) when the artifact does not exist.
type ArtifactStore interface {
	PageCount(path string) (count int, exists bool, err error)
	Write(path string, data []byte) error
}
