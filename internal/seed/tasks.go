package seed

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/services"
)

// CreatedBy is recorded as metadata.createdBy on seeded tasks.
const CreatedBy = "seed"

type param = map[string]interface{}

// AirflowTasks are the default palette blocks for Airflow DAGs.
func AirflowTasks() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"name":        "WITH DAG",
			"type":        "DAG",
			"icon":        "account_tree",
			"category":    "airflow",
			"description": "Airflow DAG object (schedule, tags, etc.).",
			"framework":   "airflow",
			"platform":    "airflow",
			"template":    "dag",
			"parameters": map[string]interface{}{
				"dag_id":            param{"type": "string", "required": true, "default": "my_dag"},
				"schedule_interval": param{"type": "string", "required": false, "default": "@daily"},
				"tags":              param{"type": "array", "required": false, "default": []interface{}{"consumption"}},
			},
			"isDefaultFavorite": false,
		},
		{
			"name":        "Bash Command",
			"type":        "BashOperator",
			"icon":        "terminal",
			"category":    "util",
			"description": "Runs a Bash command.",
			"framework":   "airflow",
			"platform":    "airflow",
			"template":    "bash",
			"parameters": map[string]interface{}{
				"task_id":      param{"type": "string", "required": true, "default": "bash_task"},
				"bash_command": param{"type": "string", "required": true},
			},
			"isDefaultFavorite": true,
		},
		{
			"name":        "Python Function",
			"type":        "PythonOperator",
			"icon":        "functions",
			"category":    "python",
			"description": "Calls a Python function.",
			"framework":   "airflow",
			"platform":    "airflow",
			"template":    "python",
			"parameters": map[string]interface{}{
				"task_id":         param{"type": "string", "required": true, "default": "python_task"},
				"python_callable": param{"type": "string", "required": true},
			},
			"isDefaultFavorite": true,
		},
		{
			"name":        "Dummy Task",
			"type":        "DummyOperator",
			"icon":        "circle",
			"category":    "util",
			"description": "Operator that does nothing.",
			"framework":   "airflow",
			"platform":    "airflow",
			"template":    "dummy",
			"parameters": map[string]interface{}{
				"task_id": param{"type": "string", "required": true, "default": "dummy_task"},
			},
			"isDefaultFavorite": false,
		},
	}
}

// ArgoTasks are the default palette blocks for Argo workflows.
func ArgoTasks() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"name":        "Workflow",
			"type":        "ArgoWorkflow",
			"icon":        "hub",
			"category":    "argo",
			"description": "Argo Workflow definition.",
			"framework":   "argo",
			"platform":    "argo",
			"template":    "workflow",
			"parameters": map[string]interface{}{
				"name": param{"type": "string", "required": true, "default": "my-workflow"},
			},
			"isDefaultFavorite": false,
		},
		{
			"name":        "Step",
			"type":        "ArgoStep",
			"icon":        "play_arrow",
			"category":    "steps",
			"description": "A step of an Argo workflow.",
			"framework":   "argo",
			"platform":    "argo",
			"template":    "step",
			"parameters": map[string]interface{}{
				"name": param{"type": "string", "required": true, "default": "step1"},
			},
			"isDefaultFavorite": true,
		},
	}
}

// Run inserts the default Airflow and Argo tasks. With ifEmpty set nothing is
// written when the collection already holds tasks.
func Run(ctx context.Context, tasks *services.TaskService, ifEmpty bool) (int, error) {
	if ifEmpty {
		n, err := tasks.Count(ctx)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			slog.Info("task collection not empty, skipping seed", "count", n)
			return 0, nil
		}
	}

	palettes := []struct {
		framework string
		docs      []map[string]interface{}
	}{
		{"airflow", AirflowTasks()},
		{"argo", ArgoTasks()},
	}

	inserted := 0
	for _, p := range palettes {
		for _, doc := range p.docs {
			if _, err := tasks.Create(ctx, doc, CreatedBy); err != nil {
				return inserted, err
			}
			inserted++
		}
		slog.Info("seeded tasks", "framework", p.framework, "count", len(p.docs))
	}
	return inserted, nil
}
