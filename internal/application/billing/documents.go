package billing

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/bills-api/internal/domain"
	"github.com/avolkov/bills-api/internal/domain/entity"
	"github.com/avolkov/bills-api/internal/domain/repository"
	"github.com/avolkov/bills-api/pkg/logger"
)

// HouseStatus is the outcome state of one house in a generation run.
//
// A house goes Pending → Rendering → Assembled on success. Any page
// failure makes it Failed for the run: rendered pages are discarded, no
// artifact is written and the house stays unprinted. Skipped means the
// existing artifact already matches the current account count.
type HouseStatus string

const (
	StatusPending   HouseStatus = "pending"
	StatusRendering HouseStatus = "rendering"
	StatusAssembled HouseStatus = "assembled"
	StatusSkipped   HouseStatus = "skipped"
	StatusFailed    HouseStatus = "failed"
)

// HouseResult reports one house's outcome to the caller.
type HouseResult struct {
	HouseID string
	Address string
	Status  HouseStatus
	Pages   int
	Path    string
	Message string
}

// DocumentConfig tunes the rendering pipeline.
type DocumentConfig struct {
	OutputDir string // fallback output root when preferences carry none
	Workers   int    // bounded page-render concurrency, min 1
	Timeout   time.Duration
}

// DocumentUseCase drives per-house receipt generation: charge computation,
// page rendering through the renderer port, document assembly and
// print-state commit.
type DocumentUseCase struct {
	store     repository.AggregateRepository
	prefsRepo repository.PreferencesRepository
	calc      *Calculator
	encoder   *PayloadEncoder
	renderer  PageRenderer
	builder   DocumentBuilder
	artifacts ArtifactStore
	tracker   *PrintStateTracker
	cfg       DocumentConfig
	log       *logger.Logger
}

// NewDocumentUseCase wires the pipeline.
func NewDocumentUseCase(
	store repository.AggregateRepository,
	prefsRepo repository.PreferencesRepository,
	calc *Calculator,
	encoder *PayloadEncoder,
	renderer PageRenderer,
	builder DocumentBuilder,
	artifacts ArtifactStore,
	tracker *PrintStateTracker,
	cfg DocumentConfig,
	log *logger.Logger,
) *DocumentUseCase {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &DocumentUseCase{
		store:     store,
		prefsRepo: prefsRepo,
		calc:      calc,
		encoder:   encoder,
		renderer:  renderer,
		builder:   builder,
		artifacts: artifacts,
		tracker:   tracker,
		cfg:       cfg,
		log:       log,
	}
}

// GenerateForHouses runs the document pipeline for the given houses, one
// house at a time. Per-house failures are reported in the results and in
// the aggregate error list; they never abort the remaining houses. The
// aggregate (printed flags plus any new error entries) is persisted after
// every assembled house and once more at the end of the run.
func (uc *DocumentUseCase) GenerateForHouses(ctx context.Context, houseIDs []string) ([]HouseResult, error) {
	agg, err := uc.store.Load(ctx)
	if err != nil {
		// A corrupt snapshot is the no-data state with an explanation
		// attached; a fresh import replaces it wholesale.
		if errors.Is(err, domain.ErrCorruptSnapshot) {
			return nil, fmt.Errorf("%w: %v", domain.ErrNoData, err)
		}
		return nil, fmt.Errorf("documents: load aggregate: %w", err)
	}
	if agg == nil {
		return nil, domain.ErrNoData
	}

	prefs, err := uc.prefsRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("documents: load preferences: %w", err)
	}

	outputRoot := prefs.OutputPath
	if outputRoot == "" {
		outputRoot = uc.cfg.OutputDir
	}

	runID := uuid.New().String()
	runLog := uc.log.With().Str("run", runID).Logger()

	results := make([]HouseResult, 0, len(houseIDs))
	for _, id := range houseIDs {
		house, ok := agg.Houses[id]
		if !ok {
			results = append(results, HouseResult{
				HouseID: id,
				Status:  StatusFailed,
				Message: domain.ErrNotFound.Error(),
			})
			continue
		}
		res := uc.generateHouse(ctx, agg, prefs, house, outputRoot)
		if res.Status == StatusAssembled {
			if err := uc.tracker.CommitAssembled(ctx, agg, house); err != nil {
				res.Status = StatusFailed
				res.Message = err.Error()
			}
		}
		runLog.Info().
			Str("house", id).
			Str("status", string(res.Status)).
			Int("pages", res.Pages).
			Msg("house processed")
		results = append(results, res)
	}

	// Error entries appended during the run must not be lost even when no
	// house reached Assembled.
	if err := uc.store.Save(ctx, agg); err != nil {
		return results, fmt.Errorf("documents: persist aggregate: %w", err)
	}
	return results, nil
}

// generateHouse runs the Pending → Rendering → Assembled|Failed machine for
// one house. All-or-nothing: a single failed page discards everything
// rendered so far for the house.
func (uc *DocumentUseCase) generateHouse(
	ctx context.Context,
	agg *entity.Aggregate,
	prefs *entity.StoredPreferences,
	house *entity.House,
	outputRoot string,
) HouseResult {
	result := HouseResult{
		HouseID: house.ID,
		Address: house.Address,
		Status:  StatusPending,
		Path:    filepath.Join(outputRoot, sanitizeFileName(house.Address)+".pdf"),
	}

	keys := house.SortedAccountKeys()

	// Idempotency: an existing artifact whose page count matches the
	// current account count is left untouched. The check is deliberately
	// coarse (count, not content).
	count, exists, err := uc.artifacts.PageCount(result.Path)
	if err != nil {
		agg.AddError(fmt.Sprintf("Документ %s: %v", result.Path, err))
		result.Status = StatusFailed
		result.Message = err.Error()
		return result
	}
	if exists && count == len(keys) {
		result.Status = StatusSkipped
		result.Pages = count
		return result
	}

	result.Status = StatusRendering
	specs := make([]*ReceiptPage, len(keys))
	for i, key := range keys {
		acc := house.Accounts[key]
		charges, cErr := uc.calc.Compute(acc, agg.Catalog)
		if cErr != nil {
			// Recoverable: the page still renders, with a zero total.
			agg.AddError(cErr.Error())
			charges = &entity.ChargeResult{Placeholder: NoDataPlaceholder}
		}
		specs[i] = &ReceiptPage{
			Account:      acc,
			HouseAddress: house.Address,
			Lines:        charges.Lines,
			Placeholder:  charges.Placeholder,
			Total:        charges.Total,
			QRPayload:    uc.encoder.Encode(acc, charges.Total, prefs.Recipient, agg.Preferences),
			PeriodLabel:  agg.Preferences.Label(),
			Executor:     prefs.Executor,
			Recipient:    prefs.Recipient,
		}
	}

	pages, rErr := uc.renderPages(ctx, specs)
	if rErr != nil {
		agg.AddError(rErr.Error())
		result.Status = StatusFailed
		result.Message = rErr.Error()
		return result
	}

	data, bErr := uc.builder.BuildDocument(ctx, pages)
	if bErr != nil {
		wrapped := fmt.Errorf("%w: дом %s: %v", domain.ErrDocumentAssembly, house.Address, bErr)
		agg.AddError(wrapped.Error())
		result.Status = StatusFailed
		result.Message = wrapped.Error()
		return result
	}

	if wErr := uc.artifacts.Write(result.Path, data); wErr != nil {
		agg.AddError(fmt.Sprintf("Документ %s: %v", result.Path, wErr))
		result.Status = StatusFailed
		result.Message = wErr.Error()
		return result
	}

	result.Status = StatusAssembled
	result.Pages = len(pages)
	return result
}

// renderPages renders all pages of one house with bounded concurrency,
// preserving account order in the returned slice. Each render gets its own
// timeout. Exactly one error is surfaced per failed house: the first one
// in page order.
func (uc *DocumentUseCase) renderPages(ctx context.Context, specs []*ReceiptPage) ([]Page, error) {
	pages := make([]Page, len(specs))
	errs := make([]error, len(specs))

	sem := make(chan struct{}, uc.cfg.Workers)
	var wg sync.WaitGroup
	for i := range specs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			rctx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
			defer cancel()

			page, err := uc.renderer.RenderPage(rctx, specs[i])
			if err != nil {
				errs[i] = err
				return
			}
			pages[i] = page
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%w: лицевой счет %s: %v",
				domain.ErrPageRender, specs[i].Account.Key, err)
		}
	}
	return pages, nil
}

// sanitizeFileName makes a house address safe to use as a file name.
func sanitizeFileName(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	name := strings.TrimSpace(replacer.Replace(s))
	if name == "" {
		name = "дом"
	}
	return name
}
