package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danielsotopino/simple-taskmanager/internal/taskutil"
	"github.com/danielsotopino/simple-taskmanager/internal/ui"
	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/types"
)

// doctorCheck is one diagnostic result.
type doctorCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok, warn, fail
	Detail string `json:"detail,omitempty"`
	Hint   string `json:"hint,omitempty"`
}

var doctorJSON bool

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and data problems",
	Long: `Run diagnostics over the configuration, the task document, the
definitions file, and the archive database. Each check reports ok,
warn, or fail with a hint for fixing failures.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Emit JSON instead of formatted text")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	checks := runDoctorChecks(GetConfig())

	if doctorJSON {
		return printJSON(checks)
	}

	failures := 0
	for _, check := range checks {
		var badge string
		switch check.Status {
		case "ok":
			badge = ui.StyleSuccess.Render("ok  ")
		case "warn":
			badge = ui.StyleWarning.Render("warn")
		default:
			badge = ui.StyleError.Render("FAIL")
			failures++
		}
		fmt.Printf("[%s] %s", badge, check.Name)
		if check.Detail != "" {
			fmt.Printf(": %s", check.Detail)
		}
		fmt.Println()
		if check.Hint != "" && check.Status != "ok" {
			fmt.Printf("       hint: %s\n", check.Hint)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	fmt.Println("\nEverything looks healthy.")
	return nil
}

// runDoctorChecks executes every diagnostic against the given
// configuration.
func runDoctorChecks(config *types.AppConfig) []doctorCheck {
	var checks []doctorCheck

	// Configuration shape.
	if err := validateAppConfig(config); err != nil {
		checks = append(checks, doctorCheck{
			Name: "config", Status: "fail", Detail: err.Error(),
			Hint: "fix .taskmanager.yaml or the TASKMANAGER_* environment variables",
		})
	} else {
		checks = append(checks, doctorCheck{Name: "config", Status: "ok", Detail: fmt.Sprintf("format=%s file=%s", config.Data.Format, config.Data.File)})
	}

	// Data file presence and parse.
	doc, docJSON, check := checkDataFile(config)
	checks = append(checks, check)

	if doc != nil {
		checks = append(checks, checkSchema(docJSON))
		checks = append(checks, checkDuplicateIDs(doc))
		checks = append(checks, checkDependencies(doc))
	}

	checks = append(checks, checkDataDirWritable(config.Data.File))
	checks = append(checks, checkDefinitions(config.Data.DefinitionsFile))
	checks = append(checks, checkArchive(config))

	return checks
}

// checkDataFile loads the document through the store and returns it
// plus a canonical JSON rendering for schema validation.
func checkDataFile(config *types.AppConfig) (models.Document, []byte, doctorCheck) {
	if _, err := os.Stat(config.Data.File); os.IsNotExist(err) {
		return nil, nil, doctorCheck{
			Name: "data file", Status: "warn",
			Detail: fmt.Sprintf("%s does not exist yet", config.Data.File),
			Hint:   "run 'simple-taskmanager init' or add a first task",
		}
	}

	taskStore, err := GetStore()
	if err != nil {
		return nil, nil, doctorCheck{Name: "data file", Status: "fail", Detail: err.Error(), Hint: "check data.file and data.format"}
	}
	defer func() { _ = taskStore.Close() }()

	doc, err := taskStore.GetDocument()
	if err != nil {
		return nil, nil, doctorCheck{Name: "data file", Status: "fail", Detail: err.Error(), Hint: "the document cannot be parsed; restore from a backup"}
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return doc, nil, doctorCheck{Name: "data file", Status: "fail", Detail: err.Error()}
	}

	tasks := 0
	for _, c := range doc {
		tasks += len(c.Tasks)
	}
	return doc, docJSON, doctorCheck{Name: "data file", Status: "ok", Detail: fmt.Sprintf("%d contexts, %d top-level tasks", len(doc), tasks)}
}

func checkSchema(docJSON []byte) doctorCheck {
	issues, err := models.ValidateDocumentJSON(docJSON)
	if err != nil {
		return doctorCheck{Name: "schema", Status: "fail", Detail: err.Error()}
	}
	if len(issues) > 0 {
		return doctorCheck{
			Name: "schema", Status: "fail",
			Detail: fmt.Sprintf("%d issue(s), first: %s", len(issues), issues[0]),
			Hint:   "the document was likely edited by hand; fix the listed paths",
		}
	}
	return doctorCheck{Name: "schema", Status: "ok"}
}

// checkDuplicateIDs scans each context for colliding top-level task IDs.
func checkDuplicateIDs(doc models.Document) doctorCheck {
	var dups []string
	for name, c := range doc {
		seen := map[string]bool{}
		for i := range c.Tasks {
			id := c.Tasks[i].ID
			if seen[id] {
				dups = append(dups, fmt.Sprintf("%s/%s", name, id))
			}
			seen[id] = true
		}
	}
	if len(dups) > 0 {
		return doctorCheck{
			Name: "task ids", Status: "fail",
			Detail: fmt.Sprintf("duplicate top-level IDs: %v", dups),
			Hint:   "renumber the duplicates so every top-level ID is unique in its context",
		}
	}
	return doctorCheck{Name: "task ids", Status: "ok"}
}

// checkDependencies resolves every dependency reference against the
// document. Malformed references fail; references whose target task no
// longer exists warn, since the target may live in a different document.
func checkDependencies(doc models.Document) doctorCheck {
	var malformed, dangling []string

	inspect := func(owner string, deps []string) {
		for _, ref := range deps {
			depContext, depTask, depSubtask, err := taskutil.ParseDependencyRef(ref)
			if err != nil {
				malformed = append(malformed, fmt.Sprintf("%s -> %q", owner, ref))
				continue
			}
			ctx, ok := doc[depContext]
			if !ok {
				dangling = append(dangling, fmt.Sprintf("%s -> %s", owner, ref))
				continue
			}
			task := ctx.FindTask(depTask)
			if task == nil {
				dangling = append(dangling, fmt.Sprintf("%s -> %s", owner, ref))
				continue
			}
			if depSubtask != "" && models.FindSubtask(task.Subtasks, depSubtask) == nil {
				dangling = append(dangling, fmt.Sprintf("%s -> %s", owner, ref))
			}
		}
	}

	for name, c := range doc {
		for i := range c.Tasks {
			inspect(fmt.Sprintf("%s/%s", name, c.Tasks[i].ID), c.Tasks[i].Dependencies)
		}
	}

	if len(malformed) > 0 {
		return doctorCheck{
			Name: "dependencies", Status: "fail",
			Detail: fmt.Sprintf("malformed references: %v", malformed),
			Hint:   "dependency references take the form context:taskID or context:taskID:subtaskID",
		}
	}
	if len(dangling) > 0 {
		return doctorCheck{
			Name: "dependencies", Status: "warn",
			Detail: fmt.Sprintf("unresolved references: %v", dangling),
			Hint:   "the referenced tasks were deleted or live in another document",
		}
	}
	return doctorCheck{Name: "dependencies", Status: "ok"}
}

// checkDataDirWritable verifies atomic saves can land: the store writes
// a temp file next to the document and renames it into place.
func checkDataDirWritable(dataFile string) doctorCheck {
	dir := filepath.Dir(dataFile)
	probe, err := os.CreateTemp(dir, ".doctor-probe-*")
	if err != nil {
		return doctorCheck{
			Name: "data dir", Status: "fail", Detail: err.Error(),
			Hint: fmt.Sprintf("make %s writable so saves and file locks work", dir),
		}
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return doctorCheck{Name: "data dir", Status: "ok"}
}

func checkDefinitions(path string) doctorCheck {
	if path == "" {
		return doctorCheck{Name: "definitions", Status: "warn", Detail: "no definitions file configured"}
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return doctorCheck{Name: "definitions", Status: "ok", Detail: "no definitions file yet"}
	}
	if err != nil {
		return doctorCheck{Name: "definitions", Status: "fail", Detail: err.Error()}
	}
	if len(data) > 0 {
		var probe models.DefinitionsDocument
		if err := json.Unmarshal(data, &probe); err != nil {
			return doctorCheck{Name: "definitions", Status: "fail", Detail: err.Error(), Hint: "the definitions file is not valid JSON"}
		}
	}
	return doctorCheck{Name: "definitions", Status: "ok"}
}

func checkArchive(config *types.AppConfig) doctorCheck {
	if !config.Archive.Enabled {
		return doctorCheck{Name: "archive", Status: "ok", Detail: "disabled"}
	}
	arch, err := GetArchiveStore()
	if err != nil {
		return doctorCheck{Name: "archive", Status: "fail", Detail: err.Error(), Hint: "check archive.file"}
	}
	defer func() { _ = arch.Close() }()

	stats, err := arch.Stats()
	if err != nil {
		return doctorCheck{Name: "archive", Status: "fail", Detail: err.Error()}
	}
	return doctorCheck{Name: "archive", Status: "ok", Detail: fmt.Sprintf("%d entries", stats.TotalEntries)}
}
