package usecase

import (
	"context"
	"time"

	"research-publisher/internal/publisher/config"
	"research-publisher/internal/publisher/domain/model"
	"research-publisher/internal/publisher/domain/repository"
	"research-publisher/internal/shared/docpath"
	"research-publisher/internal/shared/logger"

	"github.com/google/uuid"
)

// Sub-collections under the root document, in publish order. The index
// document lists them for discovery.
var subcollections = []string{
	"research",
	"tiers",
	"competitors",
	"b2b_models",
	"analytics",
}

// Field names added to fanned-out documents.
const (
	fieldTierID    = "tier_id"
	fieldUpdatedAt = "updated_at"
)

// PublishResult summarizes a completed run for the caller's console report.
type PublishResult struct {
	RunID            string
	RootPath         string
	Version          string
	VersionID        string
	Status           string
	TierCount        int
	SourceCount      int
	DocumentsWritten int
	Subcollections   []string
}

// PublisherUsecase fans one research document out into the destination
// layout: one main document, one document per tier, the competitor, B2B and
// insights documents, and finally the index document. Writes are strictly
// sequential; the first failure aborts the run, leaving earlier writes in
// place.
type PublisherUsecase struct {
	store repository.DocumentStore
	cfg   *config.Config
	log   logger.Logger
	now   func() time.Time
}

// NewPublisherUsecase creates a publisher.
func NewPublisherUsecase(store repository.DocumentStore, cfg *config.Config, log logger.Logger) *PublisherUsecase {
	return &PublisherUsecase{
		store: store,
		cfg:   cfg,
		log:   log.WithComponent("publisher"),
		now:   time.Now,
	}
}

// Publish loads the research file and writes all destination documents.
// For T tiers it issues exactly T+6 writes.
func (uc *PublisherUsecase) Publish(ctx context.Context) (*PublishResult, error) {
	runID := uuid.NewString()
	log := uc.log.WithFields(map[string]interface{}{"run_id": runID})

	// Load, parse and validate before touching the store, so a bad input
	// never leaves partial destination state.
	research, err := model.Load(uc.cfg.ResearchFile)
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded research file %s (%d tiers, %d sources)",
		uc.cfg.ResearchFile, research.TierCount(), research.SourceCount())

	research.Stamp(model.UploadMetadata{
		UploadedAt: uc.now().UTC(),
		UploadedBy: uc.cfg.UploadedBy,
		Version:    uc.cfg.Version,
		Status:     uc.cfg.Status,
	})

	result := &PublishResult{
		RunID:          runID,
		RootPath:       uc.cfg.RootPath(),
		Version:        uc.cfg.Version,
		VersionID:      uc.cfg.VersionID,
		Status:         uc.cfg.Status,
		TierCount:      research.TierCount(),
		SourceCount:    research.SourceCount(),
		Subcollections: subcollections,
	}

	// Main research document carries the full stamped tree.
	mainPath := uc.childPath("research", uc.cfg.VersionID)
	if err := uc.store.Set(ctx, mainPath, research.Tree()); err != nil {
		return nil, err
	}
	result.DocumentsWritten++
	log.Info("Uploaded main research document")

	// One document per tier, in source key order.
	for _, name := range research.TierNames() {
		attrs, _ := research.Tier(name)
		doc := uc.withUpdatedAt(attrs)
		doc[fieldTierID] = name
		if err := uc.store.Set(ctx, uc.childPath("tiers", name), doc); err != nil {
			return nil, err
		}
		result.DocumentsWritten++
		log.Infof("Uploaded tier: %s", name)
	}

	compDoc := map[string]interface{}{
		"competitors":  research.CompetitorPricing(),
		fieldUpdatedAt: uc.now().UTC(),
	}
	if err := uc.store.Set(ctx, uc.childPath("competitors", uc.cfg.AnalysisID), compDoc); err != nil {
		return nil, err
	}
	result.DocumentsWritten++
	log.Info("Uploaded competitor analysis")

	if err := uc.store.Set(ctx, uc.childPath("b2b_models", "api_pricing"), uc.withUpdatedAt(research.B2BAPIPricing())); err != nil {
		return nil, err
	}
	result.DocumentsWritten++
	log.Info("Uploaded B2B API pricing")

	if err := uc.store.Set(ctx, uc.childPath("b2b_models", "white_label"), uc.withUpdatedAt(research.WhiteLabelReseller())); err != nil {
		return nil, err
	}
	result.DocumentsWritten++
	log.Info("Uploaded white-label pricing")

	if err := uc.store.Set(ctx, uc.childPath("analytics", "key_insights"), uc.withUpdatedAt(research.KeyInsights())); err != nil {
		return nil, err
	}
	result.DocumentsWritten++
	log.Info("Uploaded key insights")

	// Index document last, so it only ever points at a fully published set.
	indexDoc := map[string]interface{}{
		"latest_version": uc.cfg.VersionID,
		"last_updated":   uc.now().UTC(),
		"status":         uc.cfg.Status,
		"subcollections": subcollections,
		"description":    uc.cfg.Description,
		"total_sources":  research.SourceCount(),
	}
	if err := uc.store.Set(ctx, uc.cfg.RootPath(), indexDoc); err != nil {
		return nil, err
	}
	result.DocumentsWritten++
	log.Info("Created index document")

	return result, nil
}

// childPath builds a document path under the root document.
func (uc *PublisherUsecase) childPath(collection, document string) string {
	return docpath.Build(uc.cfg.RootCollection, uc.cfg.RootDocument, collection, document)
}

// withUpdatedAt copies attrs and adds a fresh updated_at, leaving the source
// tree untouched.
func (uc *PublisherUsecase) withUpdatedAt(attrs map[string]interface{}) map[string]interface{} {
	doc := make(map[string]interface{}, len(attrs)+1)
	for k, v := range attrs {
		doc[k] = v
	}
	doc[fieldUpdatedAt] = uc.now().UTC()
	return doc
}
