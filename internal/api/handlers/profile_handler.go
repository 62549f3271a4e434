package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/okembo/profilehub/internal/services"
	"github.com/okembo/profilehub/internal/utils"
	"github.com/okembo/profilehub/internal/view"
)

const maxAvatarBytes = 5 << 20

type ProfileHandler struct {
	workflows *services.Registry
	log       *logrus.Logger
}

func NewProfileHandler(workflows *services.Registry, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{workflows: workflows, log: log}
}

// Me loads the owner's row and returns the form state. A load failure
// other than "no row yet" is already logged by the workflow; the form
// simply stays in its pre-load state.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	wf := h.workflows.GetOrCreate(userID)
	_ = wf.Load(c.Request.Context())

	c.JSON(http.StatusOK, wf.Snapshot())
}

func (h *ProfileHandler) BeginEdit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	wf := h.workflows.GetOrCreate(userID)
	wf.BeginEdit()

	c.JSON(http.StatusOK, wf.Snapshot())
}

// UpdateProfileRequest carries the edited fields. Every field routes to
// its own setter; there is no generic update-by-field-name path.
type UpdateProfileRequest struct {
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	Country       *string `json:"country,omitempty"`
	Religion      *string `json:"religion,omitempty"`
	BloodGroup    *string `json:"blood_group,omitempty"`
	MaritalStatus *string `json:"marital_status,omitempty"`
	Institution   *string `json:"institution,omitempty"`

	// raw comma-separated text, split and trimmed server-side
	Hobbies *string `json:"hobbies,omitempty"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.Update", "invalid request body", err))
		return
	}

	wf := h.workflows.GetOrCreate(userID)

	if req.FirstName != nil {
		wf.SetFirstName(*req.FirstName)
	}
	if req.LastName != nil {
		wf.SetLastName(*req.LastName)
	}
	if req.DateOfBirth != nil {
		wf.SetDateOfBirth(*req.DateOfBirth)
	}
	if req.Country != nil {
		wf.SetCountry(*req.Country)
	}
	if req.Religion != nil {
		wf.SetReligion(*req.Religion)
	}
	if req.BloodGroup != nil {
		wf.SetBloodGroup(*req.BloodGroup)
	}
	if req.MaritalStatus != nil {
		wf.SetMaritalStatus(*req.MaritalStatus)
	}
	if req.Institution != nil {
		wf.SetInstitution(*req.Institution)
	}
	if req.Hobbies != nil {
		wf.SetHobbies(*req.Hobbies)
	}

	c.JSON(http.StatusOK, wf.Snapshot())
}

// Avatar records a pending image without uploading it; the upload
// happens on save so a failed upload never touches the stored row.
func (h *ProfileHandler) Avatar(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.Avatar", "missing multipart field 'avatar'", err))
		return
	}
	if fh.Size <= 0 || fh.Size > maxAvatarBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.Avatar", "file too large (max 5MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "ProfileHandler.Avatar", "failed to open upload", err))
		return
	}
	defer file.Close()

	// sniff content type (read 512 bytes)
	head := make([]byte, 512)
	n, _ := file.Read(head)
	head = head[:n]
	ct := http.DetectContentType(head)
	if !strings.HasPrefix(ct, "image/") {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.Avatar", "invalid content type (must be an image)", nil))
		return
	}

	// re-compose stream: head + remaining file
	data, err := io.ReadAll(&readJoin{a: bytes.NewReader(head), b: file})
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "ProfileHandler.Avatar", "failed to read upload", err))
		return
	}

	wf := h.workflows.GetOrCreate(userID)
	wf.SelectAvatar(fh.Filename, ct, data)

	c.JSON(http.StatusOK, wf.Snapshot())
}

func (h *ProfileHandler) Save(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	wf := h.workflows.GetOrCreate(userID)
	if err := wf.Save(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, wf.Snapshot())
}

// View returns the read-only rendering with "Not specified" fallbacks.
func (h *ProfileHandler) View(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	wf := h.workflows.GetOrCreate(userID)
	_ = wf.Load(c.Request.Context())

	snap := wf.Snapshot()
	if !snap.Loaded {
		c.JSON(http.StatusOK, view.Render(nil))
		return
	}
	c.JSON(http.StatusOK, view.Render(&snap.Draft))
}

type readJoin struct {
	a *bytes.Reader
	b io.Reader
}

func (r *readJoin) Read(p []byte) (int, error) {
	if r.a != nil && r.a.Len() > 0 {
		return r.a.Read(p)
	}
	return r.b.Read(p)
}
