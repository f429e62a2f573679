package common

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCheckTimeLimit_NilAlwaysPasses(t *testing.T) {
	if err := CheckTimeLimit(nil, 12); err != nil {
		t.Fatalf("Expected nil timestamp to pass, got %v", err)
	}
}

func TestCheckTimeLimit_FreshTimestampFails(t *testing.T) {
	now := time.Now()
	err := CheckTimeLimit(&now, 12)
	if err == nil {
		t.Fatal("Expected rate limit error for a fresh timestamp")
	}

	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("Expected DomainError, got %T", err)
	}
	if de.Code != "RATE_LIMITED" {
		t.Errorf("Expected RATE_LIMITED, got %s", de.Code)
	}
	// 12h window just opened: remaining should be ~720 minutes
	if !strings.Contains(de.Message, "719") && !strings.Contains(de.Message, "720") {
		t.Errorf("Expected ~720 minutes remaining in message, got %q", de.Message)
	}
}

func TestCheckTimeLimit_ExpiredWindowPasses(t *testing.T) {
	past := time.Now().Add(-13 * time.Hour)
	if err := CheckTimeLimit(&past, 12); err != nil {
		t.Fatalf("Expected 13h-old timestamp to pass a 12h window, got %v", err)
	}
}

func TestCheckTimeLimit_RemainingMinutesRoundedDown(t *testing.T) {
	last := time.Now().Add(-11*time.Hour - 30*time.Minute)
	err := CheckTimeLimit(&last, 12)
	if err == nil {
		t.Fatal("Expected rate limit error")
	}
	if !strings.Contains(err.Error(), "29 minutes") {
		t.Errorf("Expected 29 minutes remaining, got %q", err.Error())
	}
}
