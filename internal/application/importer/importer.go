// Package importer normalizes a raw utility-billing export into the
// house→account aggregate. Closed accounts and houses are filtered out,
// the remaining accounts are folded into houses keyed by HouseInfoId, and
// the resulting aggregate wholesale-replaces the previous snapshot.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/avolkov/bills-api/internal/domain"
	"github.com/avolkov/bills-api/internal/domain/entity"
	"github.com/avolkov/bills-api/internal/domain/repository"
	"github.com/avolkov/bills-api/pkg/logger"
)

// UseCase runs the import: decode → normalize → persist.
type UseCase struct {
	store repository.AggregateRepository
	log   *logger.Logger
}

// NewUseCase builds the import use case.
func NewUseCase(store repository.AggregateRepository, log *logger.Logger) *UseCase {
	return &UseCase{store: store, log: log}
}

// ImportFile reads an export file from disk and imports it.
func (uc *UseCase) ImportFile(ctx context.Context, path string) (*entity.Aggregate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("import: read export file: %w", err)
	}
	return uc.Import(ctx, data)
}

// Import parses the export bytes and, on success, replaces the persisted
// aggregate. A structural failure commits nothing: the previous snapshot
// stays untouched.
func (uc *UseCase) Import(ctx context.Context, data []byte) (*entity.Aggregate, error) {
	// Legacy exporters emit Windows-1251. Decode transparently when the
	// payload is not valid UTF-8.
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("import: decode cp1251: %w", err)
		}
		data = decoded
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("import: parse export: %w: %v", domain.ErrInvalidInput, err)
	}

	agg, err := Normalize(&env, uc.log)
	if err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, agg); err != nil {
		return nil, fmt.Errorf("import: persist aggregate: %w", err)
	}

	stats := agg.Stats()
	uc.log.Info().
		Int("houses", stats.Houses).
		Int("accounts", stats.Accounts).
		Int("errors", len(agg.Errors)).
		Msg("export imported")

	return agg, nil
}

// Normalize folds the export envelope into a fresh aggregate. The first
// account encountered for a house id fixes the recorded address; later
// accounts with a different address are accepted silently (the upstream
// exporter is trusted here), with a debug line for observability.
func Normalize(env *Envelope, log *logger.Logger) (*entity.Aggregate, error) {
	begin, err := ParsePeriodDate(env.BeginDate)
	if err != nil {
		return nil, fmt.Errorf("import: BeginDate %q: %w", env.BeginDate, err)
	}
	end, err := ParsePeriodDate(env.EndDate)
	if err != nil {
		return nil, fmt.Errorf("import: EndDate %q: %w", env.EndDate, err)
	}

	agg := entity.NewAggregate()
	agg.Preferences = entity.Period{
		BeginDate:      begin,
		EndDate:        end,
		OrganizationID: env.OrganizationID,
	}
	agg.Errors = append(agg.Errors, env.Errors...)

	for id, svc := range env.ServiceObjects {
		agg.Catalog[id] = entity.ServiceCatalogEntry{ID: id, Name: svc.Name}
	}

	for key, raw := range env.Accounts {
		if raw.IsAccountClosed || raw.IsHouseClosed {
			continue
		}
		acc := toAccount(key, raw)
		house, ok := agg.Houses[acc.HouseID]
		if !ok {
			house = &entity.House{
				ID:       acc.HouseID,
				Address:  raw.AddressName,
				Accounts: make(map[string]*entity.Account),
			}
			agg.Houses[acc.HouseID] = house
		} else if house.Address != raw.AddressName {
			log.Debug().
				Str("house", acc.HouseID).
				Str("recorded", house.Address).
				Str("account", raw.AddressName).
				Msg("address mismatch within house")
		}
		house.Accounts[key] = acc
	}

	return agg, nil
}

func toAccount(key string, raw RawAccount) *entity.Account {
	acc := &entity.Account{
		Key:               key,
		HouseID:           raw.HouseInfoID.String(),
		Address:           raw.AddressName,
		FlatNumber:        raw.FlatNumber.String(),
		OwnerSurname:      raw.OwnerSurname,
		OwnerName:         raw.OwnerName,
		OwnerMiddleName:   raw.OwnerMiddleName,
		TotalArea:         raw.TotalArea,
		LodgerCount:       raw.LodgerCount,
		AccountNumber:     raw.AccountNumber.String(),
		GisServiceNumber:  raw.GisGkhServiceNumber,
		PersonalAccountID: raw.PersonalAccountID.String(),
		Printed:           false,
	}
	for _, coll := range raw.ServiceCollections {
		services := make([]entity.ServiceCharge, 0, len(coll.Services))
		for _, s := range coll.Services {
			services = append(services, entity.ServiceCharge{
				ServiceID:        s.ServiceID.String(),
				Consumption:      s.Consumption,
				Price:            s.Price,
				ChargeSum:        s.ChargeSum,
				RecalculationSum: s.RecalculationSum,
			})
		}
		acc.Collections = append(acc.Collections, entity.ServiceCollection{Services: services})
	}
	return acc
}

// ParsePeriodDate parses a YYYY-MM-DD export date into a calendar date.
// Anything that does not split into exactly three numeric parts yields
// domain.ErrMalformedDate.
func ParsePeriodDate(s string) (entity.Date, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return entity.Date{}, domain.ErrMalformedDate
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return entity.Date{}, domain.ErrMalformedDate
		}
		nums[i] = n
	}
	return entity.Date{Year: nums[0], Month: nums[1], Day: nums[2]}, nil
}
