package track

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/davidahmann/intake/internal/request"
	"github.com/davidahmann/intake/pkg/types"
)

func TestRenderRecordsEmpty(t *testing.T) {
	got := RenderRecords(Header(request.Feature), nil, "")
	want := "*Feature requests*\nNo requests found."
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderRecordsBullets(t *testing.T) {
	records := []types.Record{
		{Title: "Foo widget", Status: "New"},
		{Title: "Bar thing", Status: "Pending Review"},
	}
	got := RenderRecords(Header(request.Feature), records, HiddenHint(request.Feature))
	want := "*Feature requests*\n" +
		"• Foo widget - New\n" +
		"• Bar thing - Pending Review\n" +
		"_Completed requests are hidden. Mention me with \"status all\" to see them._"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHelpListsCategoryStatuses(t *testing.T) {
	got := RenderHelp(request.BizDev)
	want := "*Here's what I can do:*\n" +
		"• mention me in a thread to archive it as a new tracked request\n" +
		"• `status` lists open requests; `status all` includes finished ones\n" +
		"• `update <request> to <new status>` changes a request's status\n" +
		"Valid BD statuses: Not in CRM yet, Added to CRM"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("help mismatch (-want +got):\n%s", diff)
	}
}
