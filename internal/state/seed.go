package state

import (
	"strconv"
	"time"
)

const demoPassword = "password"

// seedAccounts returns the two demo credentials created on first run.
func seedAccounts(newID func() string) []Account {
	return []Account{
		{ID: newID(), Email: "user@example.com", Password: demoPassword, Role: RoleUser, Name: "Demo User"},
		{ID: newID(), Email: "worker@example.com", Password: demoPassword, Role: RoleWorker, Name: "Demo Worker"},
	}
}

// seedComplaints returns the fixed first-run complaint set: two verified
// example reports with plausible coordinates.
func seedComplaints(newID func() string, now time.Time) []Complaint {
	base := []Complaint{
		{
			Title:        "Overflowing bins near market",
			Description:  "Piled plastic bags and food waste attracting stray animals.",
			Lat:          13.0827,
			Lng:          80.2707,
			WasteType:    WasteMixed,
			Toxicity:     ToxicityMedium,
			Verified:     true,
			ReporterName: "Aditi",
		},
		{
			Title:        "E-waste dump behind school",
			Description:  "Discarded batteries and circuit boards spotted.",
			Lat:          12.9716,
			Lng:          77.5946,
			WasteType:    WasteEWaste,
			Toxicity:     ToxicityHigh,
			Verified:     true,
			ReporterName: "Rahul",
		},
	}
	out := make([]Complaint, 0, len(base))
	for i, c := range base {
		c.ID = newID()
		c.CreatedAt = now.Add(-time.Duration(i+1) * 45 * time.Minute).UnixMilli()
		c.Status = StatusSubmitted
		if c.Verified {
			c.Status = StatusVerified
		}
		c.ReporterID = "seed-" + strconv.Itoa(i)
		out = append(out, c)
	}
	return out
}
