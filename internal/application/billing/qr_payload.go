package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avolkov/bills-api/internal/domain/entity"
)

// ST00012 payment payload (GOST R 56042-2014 service tag, version 0001,
// Windows-1251 marker 2). Field order is fixed and reproduced exactly;
// scanners are strict about it.
const payloadTag = "ST00012"

// PayloadEncoder builds the pipe-delimited bank-transfer string fed to the
// QR encoder.
type PayloadEncoder struct{}

// NewPayloadEncoder builds the encoder.
func NewPayloadEncoder() *PayloadEncoder { return &PayloadEncoder{} }

// Encode produces the payment payload for one account. Sum is the account
// total in kopecks: the decimal total rounded to two places and scaled by
// 100, never coerced through floating point.
func (e *PayloadEncoder) Encode(
	acc *entity.Account,
	total decimal.Decimal,
	recipient entity.BankParty,
	period entity.Period,
) string {
	kopecks := total.Round(2).Mul(decimal.NewFromInt(100)).IntPart()

	fields := []string{
		payloadTag,
		"Name=" + recipient.Name,
		"PersonalAcc=" + recipient.CalcAcc,
		"BankName=" + recipient.Bank,
		"BIC=" + recipient.BIK,
		"CorrespAcc=" + recipient.CorrAcc,
		"PayeeINN=" + recipient.INN,
		"KPP=" + recipient.KPP,
		fmt.Sprintf("Sum=%d", kopecks),
		"PersAcc=" + acc.AccountNumber,
		"LastName=" + acc.OwnerSurname,
		"FirstName=" + acc.OwnerName,
		"MiddleName=" + acc.OwnerMiddleName,
		fmt.Sprintf("PaymPeriod=%d.%d", period.BeginDate.Month, period.BeginDate.Year),
		"AddAmount=0",
	}
	return strings.Join(fields, "|")
}
