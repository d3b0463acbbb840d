package handlers

import (
	"testing"
	"time"

	"moneyladder/internal/models"
)

func TestBuildProfileDataOwnProfile(t *testing.T) {
	owner := &models.User{ID: 7, Name: "Alice", Balance: 1500}
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	finished := created.Add(10 * time.Minute)
	games := []models.Game{
		{ID: 1, UserID: 7, CurrentLevel: 5, Prize: 1000, CreatedAt: created, FinishedAt: &finished},
		{ID: 2, UserID: 7, CurrentLevel: 3, CreatedAt: created},
	}

	data := buildProfileData(owner, owner, games, nil, "token")

	if !data.IsOwner {
		t.Error("expected IsOwner when a player views their own profile")
	}
	if data.Owner != owner || data.User != owner {
		t.Error("expected viewer and owner to both be the profile's player")
	}
	if data.Title != "Alice - Money Ladder" {
		t.Errorf("Title = %q", data.Title)
	}

	if len(data.Games) != 2 {
		t.Fatalf("len(Games) = %d, want 2", len(data.Games))
	}
	if data.Games[0].Status != models.StatusMoney {
		t.Errorf("Games[0].Status = %s, want %s", data.Games[0].Status, models.StatusMoney)
	}
	if data.Games[1].Status != models.StatusInProgress {
		t.Errorf("Games[1].Status = %s, want %s", data.Games[1].Status, models.StatusInProgress)
	}
	if data.Games[0].CreatedAt != "Mar 14, 2026 09:30" {
		t.Errorf("Games[0].CreatedAt = %q", data.Games[0].CreatedAt)
	}
}

func TestBuildProfileDataOtherPlayer(t *testing.T) {
	owner := &models.User{ID: 7, Name: "Alice", Balance: 1500}
	viewer := &models.User{ID: 9, Name: "Bob"}

	data := buildProfileData(viewer, owner, nil, nil, "token")

	if data.IsOwner {
		t.Error("expected a read-only view for another player's profile")
	}
	if data.Owner != owner {
		t.Error("expected Owner to be the profile's player")
	}
	if data.User != viewer {
		t.Error("expected User to be the signed-in viewer")
	}
	if len(data.Games) != 0 {
		t.Errorf("len(Games) = %d, want 0", len(data.Games))
	}
}
