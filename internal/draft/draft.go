package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"relief-dispatch/internal/activity"
	"relief-dispatch/internal/area"
	"relief-dispatch/internal/domain"
	"relief-dispatch/internal/geo"
	"relief-dispatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Status draft lifecycle state.
type Status int

const (
	StatusEditing Status = iota
	StatusPendingConfirmation
	StatusCommitting
	StatusCommitted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusPendingConfirmation:
		return "pending_confirmation"
	case StatusCommitting:
		return "committing"
	case StatusCommitted:
		return "committed"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Deps collaborators of a draft. Catalog, Templates, Beneficiaries and Requests are required.
type Deps struct {
	Catalog       *geo.Catalog
	Templates     repository.TemplatesRepository
	Beneficiaries repository.BeneficiaryLookup
	Requests      repository.RequestsRepository
	Submitter     Submitter
	Activity      activity.Logger
	Logger        *zap.Logger
	Actor         domain.Actor

	// Now and NewID default to time.Now and a random UUID.
	Now   func() time.Time
	NewID func() string
}

// Preview what the confirmation step shows before commit.
type Preview struct {
	TemplateID            string           `json:"template_id"`
	TemplateName          string           `json:"template_name"`
	Area                  domain.AreaNames `json:"area"`
	AreaText              string           `json:"area_text"`
	Quantity              int              `json:"quantity"`
	BeneficiaryCount      int              `json:"beneficiary_count"`
	VerifiedCount         int              `json:"verified_count"`
	Priority              domain.Priority  `json:"priority"`
	PriorityLabel         string           `json:"priority_label"`
	EstimatedCost         float64          `json:"estimated_cost"`
	EstimatedDeliveryTime string           `json:"estimated_delivery_time"`
	Notes                 string           `json:"notes"`
	// Warning is set when a soft validation outcome was accepted.
	Warning error `json:"-"`
}

// Summary confirmation of a committed request.
type Summary struct {
	RequestID             string    `json:"request_id"`
	TemplateName          string    `json:"template_name"`
	AreaText              string    `json:"area_text"`
	Quantity              int       `json:"quantity"`
	BeneficiaryCount      int       `json:"beneficiary_count"`
	EstimatedCost         float64   `json:"estimated_cost"`
	EstimatedDeliveryTime string    `json:"estimated_delivery_time"`
	PriorityLabel         string    `json:"priority_label"`
	CreatedAt             time.Time `json:"created_at"`
}

// CommitResult the outcome delivered by CommitAsync.
type CommitResult struct {
	Summary *Summary
	Err     error
}

// Draft one bulk send form: field edits, validation, confirmation and a single commit.
//
// Editing -> PendingConfirmation (Prepare) -> Committing (Commit) -> Committed | Failed.
// Failed retries with Commit or returns to Editing with Edit or any field change.
type Draft struct {
	deps Deps

	mu         sync.Mutex
	status     Status
	area       *area.State
	templateID string
	quantity   int
	priority   domain.Priority
	notes      string

	preview *Preview
	request *domain.DistributionRequest
	summary *Summary

	// submitted and recordAttempted track how far earlier attempts on
	// request got, so a retry neither resubmits nor rejects its own record.
	submitted       bool
	recordAttempted bool
}

// New returns an empty draft in Editing with normal priority.
func New(deps Deps) *Draft {
	if deps.Submitter == nil {
		deps.Submitter = NewSimulatedSubmitter(0)
	}
	if deps.Activity == nil {
		deps.Activity = activity.Nop()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = func() string { return uuid.New().String() }
	}
	if deps.Actor.Type == "" {
		deps.Actor.Type = domain.RequesterTypeOrganization
	}
	return &Draft{
		deps:     deps,
		status:   StatusEditing,
		area:     area.NewState(deps.Catalog),
		priority: domain.PriorityNormal,
	}
}

func (d *Draft) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// edit runs fn as a field change. The draft drops any staged preview and
// returns to Editing.
func (d *Draft) edit(fn func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status == StatusCommitting || d.status == StatusCommitted {
		return ErrDraftLocked
	}
	fn()
	d.unstage()
	return nil
}

func (d *Draft) unstage() {
	d.status = StatusEditing
	d.preview = nil
	d.request = nil
	d.submitted = false
	d.recordAttempted = false
}

func (d *Draft) SelectTemplate(templateID string) error {
	return d.edit(func() { d.templateID = templateID })
}

func (d *Draft) SetQuantity(quantity int) error {
	return d.edit(func() { d.quantity = quantity })
}

func (d *Draft) SetPriority(p domain.Priority) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, p)
	}
	return d.edit(func() { d.priority = p })
}

func (d *Draft) SetNotes(notes string) error {
	return d.edit(func() { d.notes = notes })
}

func (d *Draft) SelectGovernorate(id string) error {
	return d.edit(func() { d.area.SelectGovernorate(id) })
}

func (d *Draft) SelectCity(id string) error {
	return d.edit(func() { d.area.SelectCity(id) })
}

func (d *Draft) SelectDistrict(id string) error {
	return d.edit(func() { d.area.SelectDistrict(id) })
}

func (d *Draft) ResetArea() error {
	return d.edit(func() { d.area.Reset() })
}

// Edit returns a staged or failed draft to Editing.
func (d *Draft) Edit() error {
	return d.edit(func() {})
}

func (d *Draft) Selection() area.Selection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.area.Selection()
}

func (d *Draft) DescribeArea() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.area.Describe()
}

// Cities are the options for the city level under the current governorate.
func (d *Draft) Cities() []domain.City {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.area.Cities()
}

// Districts are the options for the district level under the current city.
func (d *Draft) Districts() []domain.District {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.area.Districts()
}

func (d *Draft) TemplateID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.templateID
}

func (d *Draft) Quantity() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quantity
}

func (d *Draft) Priority() domain.Priority {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.priority
}

func (d *Draft) Notes() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.notes
}

// Prepare validates the form and stages it for confirmation.
//
// Checks run in order: ErrMissingSelection, ErrEmptyTargetArea, then
// ErrQuantityExceedsAvailable. The last one is a warning: unless acceptWarnings
// is set the draft stays in Editing and the preview is returned with the error.
// Quantity is never adjusted.
func (d *Draft) Prepare(ctx context.Context, acceptWarnings bool) (*Preview, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status == StatusCommitting || d.status == StatusCommitted {
		return nil, ErrDraftLocked
	}
	d.unstage()

	var missing []string
	var tpl *domain.PackageTemplate
	if d.templateID == "" {
		missing = append(missing, "template")
	} else {
		found, err := d.deps.Templates.GetTemplate(ctx, d.templateID)
		switch {
		case errors.Is(err, repository.ErrTemplateNotFound):
			missing = append(missing, "template")
		case err != nil:
			return nil, fmt.Errorf("failed to load template: %w", err)
		case !found.SelectableBy(d.deps.Actor.ID):
			missing = append(missing, "template")
		default:
			tpl = found
		}
	}
	sel := d.area.Selection()
	if sel.GovernorateID == "" {
		missing = append(missing, "governorate")
	}
	if sel.CityID == "" {
		missing = append(missing, "city")
	}
	if sel.DistrictID == "" {
		missing = append(missing, "district")
	}
	if d.quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Kind: ErrMissingSelection, Missing: missing}
	}

	names, _ := d.area.Resolve()
	count, err := d.deps.Beneficiaries.CountByArea(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to count beneficiaries: %w", err)
	}
	if count.Total == 0 {
		return nil, &ValidationError{Kind: ErrEmptyTargetArea}
	}

	preview := &Preview{
		TemplateID:            tpl.ID,
		TemplateName:          tpl.Name,
		Area:                  names,
		AreaText:              d.area.Describe(),
		Quantity:              d.quantity,
		BeneficiaryCount:      count.Total,
		VerifiedCount:         count.Verified,
		Priority:              d.priority,
		PriorityLabel:         d.priority.Label(),
		EstimatedCost:         float64(d.quantity) * tpl.EstimatedCost,
		EstimatedDeliveryTime: d.priority.EstimatedDeliveryTime(),
		Notes:                 strings.TrimSpace(d.notes),
	}

	if d.quantity > count.Total {
		warning := &ValidationError{Kind: ErrQuantityExceedsAvailable, BeneficiaryCount: count.Total}
		if !acceptWarnings {
			return preview, warning
		}
		preview.Warning = warning
		d.deps.Activity.Info(activity.ActionBulkWarningAccepted,
			zap.String("template_id", tpl.ID),
			zap.Int("quantity", d.quantity),
			zap.Int("beneficiary_count", count.Total),
		)
	}

	d.status = StatusPendingConfirmation
	d.preview = preview
	d.deps.Activity.Info(activity.ActionBulkPrepared,
		zap.String("template_id", tpl.ID),
		zap.String("area", preview.AreaText),
		zap.Int("quantity", preview.Quantity),
		zap.String("priority", string(preview.Priority)),
	)

	out := *preview
	return &out, nil
}

// Commit submits the prepared request and records it at the front of the
// pending requests. It runs at most once per draft: a second call after
// success returns the first summary with ErrAlreadyCommitted.
//
// Once started, commit ignores cancellation of ctx. A failed commit leaves
// the draft in Failed; calling Commit again retries the same request.
func (d *Draft) Commit(ctx context.Context) (*Summary, error) {
	d.mu.Lock()
	switch d.status {
	case StatusCommitting:
		d.mu.Unlock()
		return nil, ErrCommitInProgress
	case StatusCommitted:
		out := *d.summary
		d.mu.Unlock()
		return &out, ErrAlreadyCommitted
	case StatusEditing:
		d.mu.Unlock()
		return nil, ErrNotPrepared
	}
	if err := ctx.Err(); err != nil {
		d.mu.Unlock()
		return nil, err
	}
	if d.request == nil {
		d.request = d.buildRequest()
	}
	req := *d.request
	preview := *d.preview
	submitted := d.submitted
	recordRetry := d.recordAttempted
	d.status = StatusCommitting
	d.mu.Unlock()

	logger := d.deps.Logger.With(zap.String("request_id", req.ID))
	submitCtx := context.WithoutCancel(ctx)

	var err error
	if !submitted {
		logger.Debug("Submitting bulk request", zap.String("template_id", req.TemplateID))
		err = d.deps.Submitter.Submit(submitCtx, &req)
	} else {
		logger.Debug("Bulk request already submitted, retrying record")
	}
	if err == nil {
		d.mu.Lock()
		d.submitted = true
		d.recordAttempted = true
		d.mu.Unlock()

		err = d.deps.Requests.Prepend(submitCtx, &req)
		// An earlier attempt may have stored the row before failing.
		if recordRetry && errors.Is(err, repository.ErrDuplicateRequest) {
			logger.Info("Bulk request already recorded by an earlier attempt")
			err = nil
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.status = StatusFailed
		logger.Warn("Bulk request submission failed", zap.Error(err))
		d.deps.Activity.Error(activity.ActionBulkSubmitFailed, err,
			zap.String("request_id", req.ID),
			zap.String("template_id", req.TemplateID),
		)
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	d.status = StatusCommitted
	d.summary = &Summary{
		RequestID:             req.ID,
		TemplateName:          preview.TemplateName,
		AreaText:              preview.AreaText,
		Quantity:              req.Quantity,
		BeneficiaryCount:      preview.BeneficiaryCount,
		EstimatedCost:         req.EstimatedCost,
		EstimatedDeliveryTime: req.EstimatedDeliveryTime,
		PriorityLabel:         req.Priority.Label(),
		CreatedAt:             req.CreatedAt,
	}
	d.deps.Activity.Info(activity.ActionBulkSubmitted,
		zap.String("request_id", req.ID),
		zap.String("template_id", req.TemplateID),
		zap.String("area", preview.AreaText),
		zap.Int("quantity", req.Quantity),
		zap.Float64("estimated_cost", req.EstimatedCost),
	)

	out := *d.summary
	return &out, nil
}

// CommitAsync runs Commit on its own goroutine. The channel yields exactly one result and is then closed.
func (d *Draft) CommitAsync(ctx context.Context) <-chan CommitResult {
	ch := make(chan CommitResult, 1)
	go func() {
		defer close(ch)
		summary, err := d.Commit(ctx)
		ch <- CommitResult{Summary: summary, Err: err}
	}()
	return ch
}

// Summary returns the commit summary, or nil before a successful commit.
func (d *Draft) Summary() *Summary {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.summary == nil {
		return nil
	}
	out := *d.summary
	return &out
}

// buildRequest must be called with d.mu held and a staged preview.
func (d *Draft) buildRequest() *domain.DistributionRequest {
	p := d.preview
	return &domain.DistributionRequest{
		ID:                    d.deps.NewID(),
		RequesterID:           d.deps.Actor.ID,
		RequesterType:         d.deps.Actor.Type,
		RequesterName:         d.deps.Actor.Name,
		CreatedAt:             d.deps.Now(),
		Status:                domain.RequestStatusPending,
		Kind:                  domain.RequestKindBulk,
		TemplateID:            p.TemplateID,
		Quantity:              p.Quantity,
		TargetGovernorate:     p.Area.Governorate,
		TargetCity:            p.Area.City,
		TargetDistrict:        p.Area.District,
		Notes:                 p.Notes,
		Priority:              p.Priority,
		EstimatedCost:         p.EstimatedCost,
		EstimatedDeliveryTime: p.EstimatedDeliveryTime,
	}
}
