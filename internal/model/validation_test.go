package model

import (
	"strings"
	"testing"
	"time"
)

// ============================================================================
// Slugify / CleanList Tests
// ============================================================================

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation stripped", "Go Programmers!", "go-programmers"},
		{"runs collapse", "UI  --  UX   Design", "ui-ux-design"},
		{"leading and trailing", "  ...Rust & Friends...  ", "rust-friends"},
		{"digits kept", "Web 3 Builders", "web-3-builders"},
		{"nothing usable", "!!!", ""},
		{"non-ascii dropped", "Café Club", "caf-club"},
		{"non-ascii digits dropped", "Club ٣", "club"},
		{"accented only", "Ñandú", "and"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanList_TrimsAndDedupes(t *testing.T) {
	t.Parallel()

	got := CleanList([]string{" Go ", "go", "", "Rust", "  "})
	if len(got) != 2 || got[0] != "Go" || got[1] != "Rust" {
		t.Errorf("unexpected result %v", got)
	}
}

// ============================================================================
// ValidationErrors Tests
// ============================================================================

func TestValidationErrors_AddKeepsFirstMessage(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{}
	errs.Add("name", "first")
	errs.Add("name", "second")

	if errs["name"] != "first" {
		t.Errorf("expected first message to win, got %q", errs["name"])
	}
}

func TestValidationErrors_OrNil(t *testing.T) {
	t.Parallel()

	if (ValidationErrors{}).OrNil() != nil {
		t.Error("expected nil for empty errors")
	}
}

func TestValidationErrors_FieldErrorsSorted(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{"topics": "a", "category": "b", "name": "c"}
	fe := errs.FieldErrors()

	if len(fe) != 3 || fe[0].Field != "category" || fe[2].Field != "topics" {
		t.Errorf("unexpected field order %v", fe)
	}
	if !strings.Contains(errs.Error(), "name: c") {
		t.Errorf("error string should list fields, got %q", errs.Error())
	}
}

// ============================================================================
// CreateCommunityRequest Tests
// ============================================================================

func validCommunityRequest() *CreateCommunityRequest {
	return &CreateCommunityRequest{
		Name:        "Go Programmers!",
		Description: "A place for gophers to learn together",
		Category:    "Technology",
		Topics:      []string{"go", "concurrency"},
	}
}

func TestCreateCommunityRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	if errs := validCommunityRequest().Validate(); errs != nil {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestCreateCommunityRequest_Validate_Fields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(r *CreateCommunityRequest)
		field  string
	}{
		{"missing name", func(r *CreateCommunityRequest) { r.Name = "  " }, "name"},
		{"short name", func(r *CreateCommunityRequest) { r.Name = "Go" }, "name"},
		{"long name", func(r *CreateCommunityRequest) { r.Name = strings.Repeat("a", 61) }, "name"},
		{"symbol name", func(r *CreateCommunityRequest) { r.Name = "!!!!" }, "name"},
		{"non-latin name", func(r *CreateCommunityRequest) { r.Name = "日本語の会" }, "name"},
		{"missing description", func(r *CreateCommunityRequest) { r.Description = "" }, "description"},
		{"short description", func(r *CreateCommunityRequest) { r.Description = "too short" }, "description"},
		{"missing category", func(r *CreateCommunityRequest) { r.Category = "" }, "category"},
		{"blank topics", func(r *CreateCommunityRequest) { r.Topics = []string{" ", ""} }, "topics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := validCommunityRequest()
			tt.mutate(req)
			errs := req.Validate()
			if _, ok := errs[tt.field]; !ok || len(errs) != 1 {
				t.Errorf("expected only %s error, got %v", tt.field, errs)
			}
		})
	}
}

// ============================================================================
// CreatePostRequest / CreateCommentRequest Tests
// ============================================================================

func TestCreatePostRequest_Validate(t *testing.T) {
	t.Parallel()

	if errs := (&CreatePostRequest{Content: "hello"}).Validate(); errs != nil {
		t.Errorf("expected valid post, got %v", errs)
	}
	if errs := (&CreatePostRequest{Image: "data:image/png;base64,AA=="}).Validate(); errs != nil {
		t.Errorf("image-only post should be valid, got %v", errs)
	}
	if errs := (&CreatePostRequest{Content: "   "}).Validate(); errs["content"] == "" {
		t.Errorf("expected content error, got %v", errs)
	}
	long := &CreatePostRequest{Content: strings.Repeat("x", MaxPostContentLength+1)}
	if errs := long.Validate(); errs["content"] == "" {
		t.Errorf("expected length error, got %v", errs)
	}
}

func TestCreateCommentRequest_Validate(t *testing.T) {
	t.Parallel()

	if errs := (&CreateCommentRequest{Content: "nice"}).Validate(); errs != nil {
		t.Errorf("expected valid comment, got %v", errs)
	}
	if errs := (&CreateCommentRequest{}).Validate(); errs["content"] == "" {
		t.Errorf("expected content error, got %v", errs)
	}
}

// ============================================================================
// ScheduleSessionRequest Tests
// ============================================================================

func TestScheduleSessionRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *ScheduleSessionRequest {
		return &ScheduleSessionRequest{
			Title:           "Intro to Go",
			ParticipantName: "Ada",
			Date:            "2026-03-01",
			Time:            "14:30",
			DurationMinutes: 60,
			Type:            SessionTeaching,
		}
	}

	if errs := valid().Validate(); errs != nil {
		t.Fatalf("expected valid session, got %v", errs)
	}

	tests := []struct {
		name   string
		mutate func(r *ScheduleSessionRequest)
		field  string
	}{
		{"missing title", func(r *ScheduleSessionRequest) { r.Title = "" }, "title"},
		{"no participant", func(r *ScheduleSessionRequest) { r.ParticipantName = "" }, "participant"},
		{"bad date", func(r *ScheduleSessionRequest) { r.Date = "03/01/2026" }, "date"},
		{"bad time", func(r *ScheduleSessionRequest) { r.Time = "2pm" }, "time"},
		{"zero duration", func(r *ScheduleSessionRequest) { r.DurationMinutes = 0 }, "duration"},
		{"bad type", func(r *ScheduleSessionRequest) { r.Type = "mentoring" }, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := valid()
			tt.mutate(req)
			if _, ok := req.Validate()[tt.field]; !ok {
				t.Errorf("expected %s error", tt.field)
			}
		})
	}
}

func TestScheduledSession_StartsAt(t *testing.T) {
	t.Parallel()

	s := ScheduledSession{Date: "2026-03-01", Time: "14:30"}
	at, ok := s.StartsAt(time.UTC)
	if !ok || at.Hour() != 14 || at.Minute() != 30 {
		t.Errorf("unexpected start %v ok=%v", at, ok)
	}

	if _, ok := (ScheduledSession{Date: "nope"}).StartsAt(time.UTC); ok {
		t.Error("expected malformed date to fail")
	}
}

// ============================================================================
// Profile / Skill Tests
// ============================================================================

func TestUpdateProfileRequest_Validate(t *testing.T) {
	t.Parallel()

	if errs := (&UpdateProfileRequest{Name: "Ada"}).Validate(); errs != nil {
		t.Errorf("expected valid profile, got %v", errs)
	}
	if errs := (&UpdateProfileRequest{Name: " "}).Validate(); errs["name"] == "" {
		t.Errorf("expected name error, got %v", errs)
	}
	if errs := (&UpdateProfileRequest{Name: "Ada", Bio: strings.Repeat("b", 161)}).Validate(); errs["bio"] == "" {
		t.Errorf("expected bio error, got %v", errs)
	}
}

func TestAddSkillRequest_Validate(t *testing.T) {
	t.Parallel()

	if errs := (&AddSkillRequest{Name: "Go", Level: SkillExpert}).Validate(); errs != nil {
		t.Errorf("expected valid skill, got %v", errs)
	}
	errs := (&AddSkillRequest{Level: "guru"}).Validate()
	if errs["name"] == "" || errs["level"] == "" {
		t.Errorf("expected name and level errors, got %v", errs)
	}
}

// ============================================================================
// Snapshot Tests
// ============================================================================

func TestSnapshotPost_TruncatesTitle(t *testing.T) {
	t.Parallel()

	post := Post{
		ID:       "p1",
		Author:   "Ada",
		Content:  strings.Repeat("word ", 20) + "\nsecond line",
		Likes:    4,
		Comments: []Comment{{ID: "c1"}, {ID: "c2"}},
	}
	savedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s := SnapshotPost(post, PostScope{Type: ScopeCommunity, ID: "web-dev"}, "Web Development", savedAt)

	if !strings.HasSuffix(s.Title, "…") {
		t.Errorf("expected truncated title, got %q", s.Title)
	}
	if s.Comments != 2 || s.Likes != 4 || s.SourceID != "web-dev" || s.SourceType != ScopeCommunity {
		t.Errorf("unexpected snapshot %+v", s)
	}
	if !s.SavedAt.Equal(savedAt) {
		t.Errorf("expected savedAt %v, got %v", savedAt, s.SavedAt)
	}
}
