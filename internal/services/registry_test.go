package services

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/okembo/profilehub/internal/identity"
)

func TestRegistryScopesWorkflowsPerOwner(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	var ops []string
	reg := NewRegistry(func() *Workflow {
		return NewWorkflow(
			&fakeIdentity{user: &identity.User{ID: "x"}},
			&fakeRepo{rows: nil, ops: &ops},
			&fakeObjects{ops: &ops},
			nil, log,
		)
	})

	a := reg.GetOrCreate("U1")
	b := reg.GetOrCreate("U2")
	if a == b {
		t.Fatal("different owners must not share a workflow")
	}

	a.SetFirstName("Ada")
	if got := b.Snapshot().Draft.FirstName; got != "" {
		t.Fatalf("draft leaked across sessions: %q", got)
	}

	if reg.GetOrCreate("U1") != a {
		t.Fatal("same owner must get the same workflow back")
	}
}
