package charts

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hshore29/FacebookActivityGrapher/internal/aggregate"
)

func TestBucketLabels(t *testing.T) {
	got := bucketLabels([]float64{2010.0, 2010.0 + 2.0/12, 2011.0 + 11.0/12})
	want := []string{"2010-01", "2010-03", "2011-12"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bucketLabels = %v, want %v", got, want)
	}
}

func TestRenderAllWritesCharts(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(dir)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	actions := []aggregate.Row{
		{Bucket: 2010.0, Groups: []string{"self", "post"}, Value: 3},
		{Bucket: 2010.25, Groups: []string{"other", "post"}, Value: 1},
		{Bucket: 2010.25, Groups: []string{"self", "like"}, Value: 5},
	}
	friendDeltas := []aggregate.Row{
		{Bucket: 2010.0, Groups: []string{"College"}, Value: 2},
		{Bucket: 2010.25, Groups: []string{"College"}, Value: -1},
		{Bucket: 2010.25, Groups: []string{""}, Value: 4},
	}

	if err := r.RenderAll(actions, friendDeltas); err != nil {
		t.Fatalf("RenderAll failed: %v", err)
	}

	for _, file := range []string{
		"activity_by_type.html", "posts_by_author.html", "friends_by_cohort.html",
	} {
		info, err := os.Stat(filepath.Join(dir, file))
		if err != nil {
			t.Errorf("chart %s not written: %v", file, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("chart %s is empty", file)
		}
	}
}
