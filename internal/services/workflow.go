package services

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/okembo/profilehub/internal/identity"
	"github.com/okembo/profilehub/internal/models"
	pgrepo "github.com/okembo/profilehub/internal/repositories/postgres"
	"github.com/okembo/profilehub/internal/storage"
	"github.com/okembo/profilehub/internal/utils"
)

type Mode string

const (
	ModeRead Mode = "read"
	ModeEdit Mode = "edit"
)

// PendingAvatar is a selected-but-not-yet-uploaded file. At most one is
// held; selecting another replaces it.
type PendingAvatar struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Workflow mediates between the authenticated identity, the in-memory
// draft, the object store, and the profile row. One instance is scoped
// to one authenticated session.
type Workflow struct {
	identity identity.Client
	profiles pgrepo.ProfileRepository
	objects  storage.ObjectStore
	events   EventPublisher
	log      *logrus.Logger

	mu      sync.Mutex
	mode    Mode
	draft   models.Profile
	pending *PendingAvatar
	loaded  bool
}

// Snapshot is a point-in-time copy of the workflow state for rendering.
type Snapshot struct {
	Mode           Mode           `json:"mode"`
	Draft          models.Profile `json:"profile"`
	AvatarSelected bool           `json:"avatar_selected"`
	Loaded         bool           `json:"loaded"`
}

func NewWorkflow(idc identity.Client, profiles pgrepo.ProfileRepository, objects storage.ObjectStore, events EventPublisher, log *logrus.Logger) *Workflow {
	return &Workflow{
		identity: idc,
		profiles: profiles,
		objects:  objects,
		events:   events,
		log:      log,
		mode:     ModeEdit,
	}
}

// Load resolves the current user and fetches their row. With no user it
// is a no-op. A missing row is not an error: the draft keeps its
// defaults and edit mode stays active. Any other fetch failure is
// logged and leaves the draft untouched.
func (w *Workflow) Load(ctx context.Context) error {
	const op = "Workflow.Load"

	user, ok := w.identity.CurrentUser(ctx)
	if !ok {
		return nil
	}

	p, err := w.profiles.GetByUserID(ctx, user.ID)
	if errors.Is(err, utils.ErrNotFound) {
		w.mu.Lock()
		w.mode = ModeEdit
		w.loaded = true
		w.mu.Unlock()
		return nil
	}
	if err != nil {
		w.log.WithError(err).WithField("user_id", user.ID).Warn("profile load failed")
		return utils.E(utils.CodeInternal, op, "failed to load profile", err)
	}

	w.mu.Lock()
	w.draft = *p
	w.mode = ModeRead
	w.loaded = true
	w.mu.Unlock()
	return nil
}

// BeginEdit switches to edit mode without altering the draft.
func (w *Workflow) BeginEdit() {
	w.mu.Lock()
	w.mode = ModeEdit
	w.mu.Unlock()
}

func (w *Workflow) SetFirstName(v string) { w.set(func(p *models.Profile) { p.FirstName = v }) }
func (w *Workflow) SetLastName(v string)  { w.set(func(p *models.Profile) { p.LastName = v }) }
func (w *Workflow) SetDateOfBirth(v string) {
	w.set(func(p *models.Profile) { p.DateOfBirth = v })
}
func (w *Workflow) SetCountry(v string)  { w.set(func(p *models.Profile) { p.Country = v }) }
func (w *Workflow) SetReligion(v string) { w.set(func(p *models.Profile) { p.Religion = v }) }
func (w *Workflow) SetBloodGroup(v string) {
	w.set(func(p *models.Profile) { p.BloodGroup = models.BloodGroup(v) })
}
func (w *Workflow) SetMaritalStatus(v string) {
	w.set(func(p *models.Profile) { p.MaritalStatus = models.MaritalStatus(v) })
}
func (w *Workflow) SetInstitution(v string) {
	w.set(func(p *models.Profile) { p.Institution = v })
}

// SetHobbies parses comma-separated input into the ordered hobbies list.
func (w *Workflow) SetHobbies(raw string) {
	w.set(func(p *models.Profile) { p.Hobbies = models.ParseHobbies(raw) })
}

func (w *Workflow) set(fn func(*models.Profile)) {
	w.mu.Lock()
	fn(&w.draft)
	w.mu.Unlock()
}

// SelectAvatar records a pending file without uploading it.
func (w *Workflow) SelectAvatar(filename, contentType string, data []byte) {
	w.mu.Lock()
	w.pending = &PendingAvatar{Filename: filename, ContentType: contentType, Data: data}
	w.mu.Unlock()
}

// AvatarObjectName derives the deterministic object path for an owner's
// avatar: the owner id as the leading path segment (the bucket policy
// keys writes on it) plus the selected file's extension. Repeated saves
// overwrite the same object.
func AvatarObjectName(ownerID, filename string) string {
	return ownerID + "/avatar" + strings.ToLower(filepath.Ext(filename))
}

// Save uploads the pending avatar (if any), upserts the full draft keyed
// by the owner id, then reloads so the draft reflects exactly what the
// store holds. The upload completes strictly before the upsert is
// attempted; an upload failure aborts the save without touching the
// stored row. The lock is not held across the external calls, so two
// racing saves are both sent and the last upsert wins.
func (w *Workflow) Save(ctx context.Context) error {
	const op = "Workflow.Save"

	user, ok := w.identity.CurrentUser(ctx)
	if !ok {
		return utils.E(utils.CodeUnauthorized, op, "not authenticated", nil)
	}

	w.mu.Lock()
	draft := w.draft
	draft.UserID = user.ID
	pending := w.pending
	w.mu.Unlock()

	if err := draft.Validate(); err != nil {
		return utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}

	if pending != nil {
		objectName := AvatarObjectName(user.ID, pending.Filename)
		if err := w.objects.Upload(ctx, objectName, pending.ContentType, bytes.NewReader(pending.Data)); err != nil {
			return utils.E(utils.CodeUnavailable, op, "failed to upload avatar", err)
		}
		draft.AvatarURL = w.objects.PublicURL(objectName)
	}

	draft.UpdatedAt = time.Now().UTC()
	if err := w.profiles.Upsert(ctx, &draft); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save profile", err)
	}

	w.mu.Lock()
	w.draft.UserID = draft.UserID
	w.draft.AvatarURL = draft.AvatarURL
	w.pending = nil
	w.mode = ModeRead
	w.mu.Unlock()

	if w.events != nil {
		w.events.ProfileSaved(ctx, user.ID)
	}

	// reflect what the store now holds, not the optimistic local draft
	if err := w.Load(ctx); err != nil {
		w.log.WithError(err).Warn("reload after save failed")
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Mode:           w.mode,
		Draft:          w.draft,
		AvatarSelected: w.pending != nil,
		Loaded:         w.loaded,
	}
}
