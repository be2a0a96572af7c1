// Package pdf renders receipt pages and assembles per-house documents with
// Maroto v2.
//
// A4 page layout, one page per account:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Счет на оплату ЖКУ за <месяц год>                           │
//	│  Плательщик / Адрес / Площадь / Проживающие        │  QR     │
//	│  Исполнитель: реквизиты, сайт, почта, режим работы          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Получатель платежа │ банковские реквизиты │ № лицевого счета│
//	│  ─────────────────────────────────────────────────────────  │
//	│  Виды услуг │ Объем │ Тариф │ Начислено │ Перерасчет │ Итого │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Итого к оплате: NNN.NN руб.                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	coreentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	fontrepo "github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/avolkov/bills-api/internal/application/billing"
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// receiptFont is the family name registered for the custom UTF-8 font.
const receiptFont = "receipt"

// ReceiptRenderer implements billing.PageRenderer and billing.DocumentBuilder.
// Pages are maroto page models; the document is a multi-page A4 PDF.
type ReceiptRenderer struct {
	customFonts []*coreentity.CustomFont
	fontFamily  string
}

// NewReceiptRenderer builds the renderer. fontPath may point to a UTF-8 TTF
// for Cyrillic text; when empty the built-in helvetica is used.
func NewReceiptRenderer(fontPath string) (*ReceiptRenderer, error) {
	r := &ReceiptRenderer{fontFamily: "helvetica"}
	if fontPath != "" {
		fonts, err := fontrepo.New().
			AddUTF8Font(receiptFont, fontstyle.Normal, fontPath).
			AddUTF8Font(receiptFont, fontstyle.Bold, fontPath).
			AddUTF8Font(receiptFont, fontstyle.Italic, fontPath).
			AddUTF8Font(receiptFont, fontstyle.BoldItalic, fontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("pdf: load font %s: %w", fontPath, err)
		}
		r.customFonts = fonts
		r.fontFamily = receiptFont
	}
	return r, nil
}

// RenderPage builds the page model for one account.
func (r *ReceiptRenderer) RenderPage(ctx context.Context, rp *billing.ReceiptPage) (billing.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := page.New()
	p.Add(r.headerRow(rp))
	p.Add(r.payerAndQRRows(rp)...)
	p.Add(line.NewRow(2, props.Line{Thickness: 0.3}))
	p.Add(r.recipientRows(rp)...)
	p.Add(line.NewRow(2, props.Line{Thickness: 0.3}))
	p.Add(r.chargeTableRows(rp)...)
	p.Add(r.totalRow(rp))
	return p, nil
}

// BuildDocument assembles the ordered page set into one PDF.
func (r *ReceiptRenderer) BuildDocument(ctx context.Context, pages []billing.Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: r.fontFamily, Size: 9})
	if len(r.customFonts) > 0 {
		builder = builder.WithCustomFonts(r.customFonts)
	}

	m := maroto.New(builder.Build())
	for i, p := range pages {
		corePage, ok := p.(core.Page)
		if !ok {
			return nil, fmt.Errorf("pdf: page %d is not a maroto page", i)
		}
		m.AddPages(corePage)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── sections ──

func (r *ReceiptRenderer) headerRow(rp *billing.ReceiptPage) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Счет на оплату ЖКУ за", props.Text{
				Size: 10, Align: align.Center, Top: 1,
			}),
			text.New(rp.PeriodLabel, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 6,
			}),
		),
	)
}

func (r *ReceiptRenderer) payerAndQRRows(rp *billing.ReceiptPage) []core.Row {
	acc := rp.Account
	ex := rp.Executor

	payer := col.New(8).Add(
		text.New("Сведения о плательщике услуг", props.Text{Size: 8, Color: colorGray, Top: 1}),
		text.New("Плательщик: "+acc.OwnerFullName(), props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		text.New(fmt.Sprintf("Адрес: %s кв. %s", acc.Address, acc.FlatNumber), props.Text{Style: fontstyle.Bold, Size: 9, Top: 10}),
		text.New(fmt.Sprintf("Площадь помещения: %s  Количество проживающих/собственников: %d",
			acc.TotalArea.String(), acc.LodgerCount), props.Text{Size: 8, Top: 15}),
	)
	qr := col.New(4).Add(code.NewQr(rp.QRPayload, props.Rect{Percent: 90, Center: true}))

	executor := col.New(12).Add(
		text.New("Исполнитель услуг: "+ex.Name, props.Text{Size: 8, Top: 1}),
		text.New("Адрес: "+ex.Address, props.Text{Size: 8, Top: 5}),
		text.New(fmt.Sprintf("Банковские реквизиты исполнителя: р/с %s %s, к/с %s, БИК %s",
			ex.CalcAcc, ex.Bank, ex.CorrAcc, ex.BIK), props.Text{Size: 8, Top: 9}),
		text.New(fmt.Sprintf("Сайт: %s    Эл.почта: %s", ex.Site, ex.Email), props.Text{Size: 8, Top: 13}),
		text.New(fmt.Sprintf("Режим работы: %s    Телефон: %s", ex.WorkTime, ex.Phones), props.Text{Size: 8, Top: 17}),
		text.New("Единый лицевой счет ГИС ЖКХ: "+ex.GisID, props.Text{Size: 8, Top: 21}),
		text.New("Идентификатор платежного документа ГИС ЖКХ: "+acc.GisServiceNumber, props.Text{Size: 8, Top: 25}),
	)

	return []core.Row{
		row.New(38).Add(payer, qr),
		row.New(30).Add(executor),
	}
}

func (r *ReceiptRenderer) recipientRows(rp *billing.ReceiptPage) []core.Row {
	rec := rp.Recipient
	header := row.New(8).Add(
		col.New(3).Add(text.New("Наименование получателя платежа", props.Text{Size: 7, Style: fontstyle.Bold, Top: 1})),
		col.New(6).Add(text.New("Номер банковского счета и банковские реквизиты", props.Text{Size: 7, Style: fontstyle.Bold, Top: 1})),
		col.New(3).Add(text.New("№ лицевого счета", props.Text{Size: 7, Style: fontstyle.Bold, Top: 1})),
	)
	values := row.New(10).Add(
		col.New(3).Add(text.New(rec.Name, props.Text{Size: 8, Top: 1})),
		col.New(6).Add(text.New(fmt.Sprintf("ИНН %s КПП %s р/с %s %s, к/с %s, БИК %s",
			rec.INN, rec.KPP, rec.CalcAcc, rec.Bank, rec.CorrAcc, rec.BIK), props.Text{Size: 8, Top: 1})),
		col.New(3).Add(text.New(rp.Account.AccountNumber, props.Text{Size: 8, Top: 1})),
	)
	title := row.New(6).Add(col.New(12).Add(
		text.New("Информация для внесения платы получателю платежа", props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1,
		}),
	))
	return []core.Row{title, header, values}
}

// chargeTableRows builds the 6-column charge table: service, consumption,
// price, charged, recalculation, line total.
func (r *ReceiptRenderer) chargeTableRows(rp *billing.ReceiptPage) []core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Top: 1,
		}))
	}
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Расчет размера платы за содержание и ремонт жилого помещения и коммунальные услуги", props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			}),
		)),
		row.New(7).Add(
			h("Виды услуг", 4, align.Left),
			h("Объем", 1, align.Center),
			h("Тариф", 2, align.Right),
			h("Начислено", 2, align.Right),
			h("Перерасчет", 1, align.Right),
			h("Итого к оплате", 2, align.Right),
		),
	}

	if rp.Placeholder != "" {
		rows = append(rows, row.New(7).Add(
			col.New(12).Add(text.New(rp.Placeholder, props.Text{Size: 8, Top: 1})),
		))
		return rows
	}

	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1}))
	}
	for _, item := range rp.Lines {
		rows = append(rows, row.New(6).Add(
			cell(item.ServiceName, 4, align.Left),
			cell(item.Consumption.String(), 1, align.Center),
			cell(item.Price.String(), 2, align.Right),
			cell(item.ChargeSum.String(), 2, align.Right),
			cell(item.RecalculationSum.String(), 1, align.Right),
			cell(item.Total.String(), 2, align.Right),
		))
	}
	return rows
}

func (r *ReceiptRenderer) totalRow(rp *billing.ReceiptPage) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Итого к оплате: %s руб.", rp.Total.StringFixed(2)), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 3,
		}),
	))
}
