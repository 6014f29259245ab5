// Package snapshot serves recorded backend responses from a directory tree.
// It lets the pipeline run against captured data without network access.
//
// Layout, one JSON file per IIN:
//
//	family/<iin>.json   familyInfo response
//	person/<iin>.json   getPersonDetailsDTOByIin response
//	cohort/<iin>.json   stat/page response (optional)
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"famcard/internal/family/ports"
	dErrors "famcard/pkg/domain-errors"
)

const snapshotToken = "snapshot"

// Source implements ports.Backend over recorded files.
type Source struct {
	fsys fs.FS
}

// New serves snapshots from fsys.
func New(fsys fs.FS) (*Source, error) {
	if fsys == nil {
		return nil, errors.New("snapshot filesystem is required")
	}
	return &Source{fsys: fsys}, nil
}

// Open serves snapshots rooted at dir.
func Open(dir string) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open snapshot dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("snapshot path %s is not a directory", dir)
	}
	return New(os.DirFS(dir))
}

// Login always succeeds; snapshots carry no credentials.
func (s *Source) Login(ctx context.Context, _ ports.Credentials) (*ports.LoginResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &ports.LoginResult{AccessToken: snapshotToken}, nil
}

// FamilyInfo returns the recorded household. A missing recording reads as a
// null family.
func (s *Source) FamilyInfo(ctx context.Context, _ ports.Session, iin string) (*ports.FamilyInfo, error) {
	var out ports.FamilyInfo
	found, err := s.read(ctx, "family", iin, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return &ports.FamilyInfo{}, nil
	}
	return &out, nil
}

// PersonDetails returns the recorded statuses, or none when not recorded.
func (s *Source) PersonDetails(ctx context.Context, _ ports.Session, iin string) (*ports.PersonDetails, error) {
	var out ports.PersonDetails
	if _, err := s.read(ctx, "person", iin, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CohortTotal returns the recorded total. Without a recording, an IIN with a
// recorded family counts as one match.
func (s *Source) CohortTotal(ctx context.Context, sess ports.Session, iin string) (int, error) {
	var page struct {
		Total int `json:"total"`
	}
	found, err := s.read(ctx, "cohort", iin, &page)
	if err != nil {
		return 0, err
	}
	if found {
		return page.Total, nil
	}
	if _, err := fs.Stat(s.fsys, path.Join("family", iin+".json")); err == nil {
		return 1, nil
	}
	return 0, nil
}

func (s *Source) read(ctx context.Context, kind, iin string, out any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !fs.ValidPath(iin) || path.Base(iin) != iin {
		return false, dErrors.New(dErrors.CodeValidation, "iin is not a valid snapshot name")
	}

	raw, err := fs.ReadFile(s.fsys, path.Join(kind, iin+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeTransport, "read snapshot")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeDecode, fmt.Sprintf("malformed %s snapshot for %s", kind, iin))
	}
	return true, nil
}
