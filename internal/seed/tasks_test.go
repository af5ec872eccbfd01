package seed

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/services"
)

func TestRunSeedsBothFrameworks(t *testing.T) {
	tasks := services.NewTaskService(dbtest.New(t))
	ctx := context.Background()

	inserted, err := Run(ctx, tasks, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := len(AirflowTasks()) + len(ArgoTasks())
	if inserted != want {
		t.Errorf("expected %d inserted, got %d", want, inserted)
	}

	argo, err := tasks.List(ctx, "argo")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(argo) != len(ArgoTasks()) {
		t.Errorf("expected %d argo tasks, got %d", len(ArgoTasks()), len(argo))
	}
	for _, task := range argo {
		meta, _ := task["metadata"].(map[string]interface{})
		if meta["createdBy"] != CreatedBy {
			t.Errorf("%v: unexpected createdBy %v", task["name"], meta["createdBy"])
		}
	}

	all, _ := tasks.List(ctx, "")
	if len(all) == 0 || all[0]["name"] != AirflowTasks()[0]["name"] {
		t.Errorf("expected airflow palette first, got %v", all)
	}
}

func TestRunIfEmptySkipsPopulatedCatalog(t *testing.T) {
	tasks := services.NewTaskService(dbtest.New(t))
	ctx := context.Background()

	if _, err := Run(ctx, tasks, true); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	inserted, err := Run(ctx, tasks, true)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if inserted != 0 {
		t.Errorf("expected nothing inserted, got %d", inserted)
	}
}

func TestPaletteDocumentsAreValid(t *testing.T) {
	for _, doc := range append(AirflowTasks(), ArgoTasks()...) {
		for _, key := range []string{"name", "category", "platform", "template", "framework"} {
			if s, _ := doc[key].(string); s == "" {
				t.Errorf("%v: missing %s", doc["name"], key)
			}
		}
	}
}
