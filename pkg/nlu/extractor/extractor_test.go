package extractor

import "testing"

func TestExtractTrackingIDs(t *testing.T) {
	e := New()

	tests := []struct {
		name    string
		text    string
		wantIDs []string
	}{
		{
			name:    "hyphenated swift id",
			text:    "Track my package SWIFT-1700000000000-AB12C please",
			wantIDs: []string{"SWIFT-1700000000000-AB12C"},
		},
		{
			name:    "embedded digit run is not reported separately",
			text:    "SWIFT-1700000000000-AB12C",
			wantIDs: []string{"SWIFT-1700000000000-AB12C"},
		},
		{
			name:    "compact alphanumeric id",
			text:    "status of SWF123456AB",
			wantIDs: []string{"SWF123456AB"},
		},
		{
			name:    "pure digits",
			text:    "where is 1234567890",
			wantIDs: []string{"1234567890"},
		},
		{
			name:    "phrase anchored capture",
			text:    "track this item swift FHKSDKVJ",
			wantIDs: []string{"FHKSDKVJ"},
		},
		{
			name:    "no id",
			text:    "where is my package",
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := e.ExtractAll(tt.text)
			if len(bag.TrackingIDs) != len(tt.wantIDs) {
				t.Fatalf("TrackingIDs = %v, want %v", bag.TrackingIDs, tt.wantIDs)
			}
			for i, want := range tt.wantIDs {
				if bag.TrackingIDs[i] != want {
					t.Errorf("TrackingIDs[%d] = %q, want %q", i, bag.TrackingIDs[i], want)
				}
			}
		})
	}
}

func TestExtractContactEntities(t *testing.T) {
	e := New()
	bag := e.ExtractAll("Reach me at jane.doe@example.com or +1-555-123-4567")

	if len(bag.Emails) != 1 || bag.Emails[0].Value != "jane.doe@example.com" {
		t.Errorf("Emails = %+v, want jane.doe@example.com", bag.Emails)
	}
	if len(bag.Emails) == 1 && bag.Emails[0].Confidence != 0.95 {
		t.Errorf("email confidence = %v, want 0.95", bag.Emails[0].Confidence)
	}
	if len(bag.PhoneNumbers) == 0 {
		t.Fatal("expected a phone number")
	}
	if bag.PhoneNumbers[0].Value != "+15551234567" {
		t.Errorf("phone = %q, want +15551234567", bag.PhoneNumbers[0].Value)
	}
}

func TestShortNumberIsNotAPhone(t *testing.T) {
	e := New()
	bag := e.ExtractAll("I have 3 packages")
	if len(bag.PhoneNumbers) != 0 {
		t.Errorf("PhoneNumbers = %+v, want none", bag.PhoneNumbers)
	}
}

func TestExtractDates(t *testing.T) {
	e := New()

	tests := []struct {
		name       string
		text       string
		wantParsed bool
	}{
		{name: "slash date", text: "deliver on 12/25/2026", wantParsed: true},
		{name: "month name date", text: "arriving Jan 5, 2026", wantParsed: true},
		{name: "nonsense date stays unparsed", text: "on 99/99/2026 maybe", wantParsed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := e.ExtractAll(tt.text)
			if len(bag.Dates) != 1 {
				t.Fatalf("Dates = %+v, want exactly one", bag.Dates)
			}
			if (bag.Dates[0].Parsed != nil) != tt.wantParsed {
				t.Errorf("Parsed = %v, wantParsed %v", bag.Dates[0].Parsed, tt.wantParsed)
			}
		})
	}
}

func TestExtractNamesSkipsStoplist(t *testing.T) {
	e := New()
	bag := e.ExtractAll("Track the Swift Delivery package for Alice Johnson")

	for _, n := range bag.Names {
		if n.Value == "Swift" || n.Value == "Delivery" || n.Value == "Package" {
			t.Errorf("stoplist word extracted as name: %q", n.Value)
		}
	}
	found := false
	for _, n := range bag.Names {
		if n.Value == "Alice Johnson" {
			found = true
		}
	}
	if !found {
		t.Errorf("Names = %+v, want Alice Johnson", bag.Names)
	}
}

func TestExtractPackageCounts(t *testing.T) {
	e := New()

	tests := []struct {
		name      string
		text      string
		wantCount int
		wantUnit  string
	}{
		{name: "numeric count", text: "I sent 3 packages yesterday", wantCount: 3, wantUnit: "packages"},
		{name: "spelled out count", text: "tracking three boxes", wantCount: 3, wantUnit: "boxes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := e.ExtractAll(tt.text)
			if len(bag.PackageCounts) != 1 {
				t.Fatalf("PackageCounts = %+v, want one", bag.PackageCounts)
			}
			got := bag.PackageCounts[0]
			if got.Count != tt.wantCount || got.Unit != tt.wantUnit {
				t.Errorf("count = %d %s, want %d %s", got.Count, got.Unit, tt.wantCount, tt.wantUnit)
			}
		})
	}
}

func TestDerivedBooleans(t *testing.T) {
	e := New()

	tests := []struct {
		name        string
		text        string
		wantPhrase  bool
		wantCourier bool
		wantPackage bool
	}{
		{name: "tracking phrase", text: "can you locate it", wantPhrase: true},
		{name: "courier keyword", text: "track this courier", wantPhrase: true, wantCourier: true},
		{name: "package keyword", text: "my package is late", wantPhrase: true, wantPackage: true},
		{name: "none", text: "good morning", wantPhrase: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := e.ExtractAll(tt.text)
			if bag.HasTrackingPhrase != tt.wantPhrase {
				t.Errorf("HasTrackingPhrase = %v, want %v", bag.HasTrackingPhrase, tt.wantPhrase)
			}
			if bag.HasCourierKeyword != tt.wantCourier {
				t.Errorf("HasCourierKeyword = %v, want %v", bag.HasCourierKeyword, tt.wantCourier)
			}
			if bag.HasPackageKeyword != tt.wantPackage {
				t.Errorf("HasPackageKeyword = %v, want %v", bag.HasPackageKeyword, tt.wantPackage)
			}
		})
	}
}

func TestExtractStatusKeywords(t *testing.T) {
	e := New()
	bag := e.ExtractAll("Is it delivered or still in transit?")
	if len(bag.StatusKeywords) != 2 {
		t.Fatalf("StatusKeywords = %v, want [delivered, in transit]", bag.StatusKeywords)
	}
}
