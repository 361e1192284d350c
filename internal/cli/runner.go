package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/idilsaglam/tasks/internal/config"
	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/store"
	"github.com/idilsaglam/tasks/internal/tui"
	"github.com/idilsaglam/tasks/internal/ui"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options carry what the runner needs besides the store.
type Options struct {
	Out, Err   io.Writer
	Config     config.Config
	ConfigPath string
}

// NeedsStore reports whether the subcommand in args reads or writes tasks.
// Help and config run without a store, so they work even when the task
// file cannot be opened.
func NeedsStore(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "help", "-h", "--help", "config":
		return false
	}
	return true
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// st may be nil when NeedsStore(args) is false.
func Run(st *store.Store, args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp(opt.Err)
		return ExitUsage
	}
	cmd, a := args[0], args[1:]
	out, errOut := opt.Out, opt.Err

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(out)
		return ExitOK

	case "ls":
		if len(a) != 0 {
			ui.Fail(errOut, "usage: tasks ls")
			return ExitUsage
		}
		return doList(out, st.Tasks(), st.Tasks())

	case "add":
		if len(a) == 0 {
			ui.Fail(errOut, "usage: tasks add <name...>")
			return ExitUsage
		}
		return doAdd(st, strings.Join(a, " "), out, errOut)

	case "search", "find":
		return doList(out, st.Search(strings.Join(a, " ")), st.Tasks())

	case "show":
		id, code := parseID(errOut, "show", a)
		if code != ExitOK {
			return code
		}
		return doShow(st, id, out, errOut)

	case "edit":
		return doEdit(st, a, out, errOut)

	case "note":
		if len(a) == 0 {
			ui.Fail(errOut, "usage: tasks note <id> [text...]")
			return ExitUsage
		}
		id, code := parseID(errOut, "note", a[:1])
		if code != ExitOK {
			return code
		}
		return doNote(st, id, strings.Join(a[1:], " "), out, errOut)

	case "rm":
		id, code := parseID(errOut, "rm", a)
		if code != ExitOK {
			return code
		}
		return doRemove(st, id, out, errOut)

	case "sort":
		if len(a) < 1 || len(a) > 2 {
			ui.Fail(errOut, "usage: tasks sort <id|name> [asc|desc]")
			return ExitUsage
		}
		return doSort(st, a, out, errOut)

	case "config":
		return doConfig(a, opt)

	case "ui":
		if err := tui.Run(st, opt.Config.Keys); err != nil {
			ui.Fail(errOut, "ui: "+err.Error())
			return ExitError
		}
		return ExitOK
	}

	ui.Fail(errOut, "unknown subcommand: "+cmd)
	fmt.Fprintln(errOut)
	PrintHelp(errOut)
	return ExitUsage
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tasks - a small task list

Usage:
  tasks [flags] <subcommand> [args]

Subcommands:
  ui                       Interactive list (default with no subcommand)
  ls                       List tasks in stored order
  add <name...>            Add a task (blank names are ignored)
  search <query...>        List tasks whose name contains the query
  show <id>                Show a task with its note
  edit [-name N] [-note T] <id>
                           Change a task's name and/or note
  note <id> [text...]      Replace a task's note (empty clears it)
  rm <id>                  Delete a task
  sort <id|name> [asc|desc]
                           Reorder the stored list
  config [init]            Print the effective config, or write it out

Flags:
  -config <path>   config file (default $XDG_CONFIG_HOME/tasks/config.toml)
  -file <path>     task file, overrides data_path and $TASKS_FILE
  -debug           debug logging on stderr

Examples:
  tasks add "Buy milk"
  tasks search milk
  tasks note 2 "before 8pm"
  tasks sort name desc
`)
}

// -------------- subcommand impls ----------------

func doList(w io.Writer, shown, all []model.Task) int {
	lines := []string{ui.Header("Tasks", len(shown), len(all)), ""}
	lines = append(lines, ui.TaskLines(shown)...)
	ui.Panel(w, lines)
	return ExitOK
}

func doAdd(st *store.Store, name string, out, errOut io.Writer) int {
	task, ok, err := st.Add(name)
	if !ok {
		if err != nil {
			return report(errOut, "add", err)
		}
		ui.Info(out, "nothing to add")
		return ExitOK
	}
	if err != nil {
		return report(errOut, "add", err)
	}
	ui.OK(out, fmt.Sprintf("added #%d", task.ID))
	return ExitOK
}

func doShow(st *store.Store, id int, out, errOut io.Writer) int {
	task, err := st.Get(id)
	if err != nil {
		return report(errOut, "show", err)
	}
	ui.Panel(out, ui.TaskDetail(task))
	return ExitOK
}

func doEdit(st *store.Store, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "")
	note := fs.String("note", "", "")
	if err := fs.Parse(args); err != nil {
		ui.Fail(errOut, "edit: "+err.Error())
		return ExitUsage
	}
	id, code := parseID(errOut, "edit", fs.Args())
	if code != ExitOK {
		return code
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["name"] && !set["note"] {
		ui.Fail(errOut, "usage: tasks edit [-name N] [-note T] <id>")
		return ExitUsage
	}

	current, err := st.Get(id)
	if err != nil {
		return report(errOut, "edit", err)
	}
	newNote := current.Note
	if set["note"] {
		newNote = *note
	}
	if _, err := st.Edit(id, *name, newNote); err != nil {
		return report(errOut, "edit", err)
	}
	ui.OK(out, fmt.Sprintf("updated #%d", id))
	return ExitOK
}

func doNote(st *store.Store, id int, text string, out, errOut io.Writer) int {
	if _, err := st.Edit(id, "", text); err != nil {
		return report(errOut, "note", err)
	}
	ui.OK(out, fmt.Sprintf("noted #%d", id))
	return ExitOK
}

func doRemove(st *store.Store, id int, out, errOut io.Writer) int {
	if err := st.Delete(id); err != nil {
		return report(errOut, "rm", err)
	}
	ui.OK(out, "removed")
	return ExitOK
}

func doSort(st *store.Store, args []string, out, errOut io.Writer) int {
	key, err := store.ParseSortKey(args[0])
	if err != nil {
		ui.Fail(errOut, "sort: "+err.Error())
		return ExitUsage
	}
	dir := store.Ascending
	if len(args) == 2 {
		if dir, err = store.ParseDirection(args[1]); err != nil {
			ui.Fail(errOut, "sort: "+err.Error())
			return ExitUsage
		}
	}
	tasks, err := st.SortBy(key, dir)
	if tasks != nil {
		doList(out, tasks, tasks)
	}
	if err != nil {
		return report(errOut, "sort", err)
	}
	return ExitOK
}

func doConfig(args []string, opt Options) int {
	switch {
	case len(args) == 0:
		b, err := config.Marshal(opt.Config)
		if err != nil {
			ui.Fail(opt.Err, "config: "+err.Error())
			return ExitError
		}
		fmt.Fprintf(opt.Out, "# %s\n%s", opt.ConfigPath, b)
		return ExitOK
	case len(args) == 1 && args[0] == "init":
		if err := config.Write(opt.ConfigPath, opt.Config); err != nil {
			ui.Fail(opt.Err, "config: "+err.Error())
			return ExitError
		}
		ui.OK(opt.Out, "wrote "+opt.ConfigPath)
		return ExitOK
	}
	ui.Fail(opt.Err, "usage: tasks config [init]")
	return ExitUsage
}

// -------------- helpers --------------

func parseID(w io.Writer, cmd string, args []string) (int, int) {
	if len(args) != 1 {
		ui.Fail(w, fmt.Sprintf("usage: tasks %s <id>", cmd))
		return 0, ExitUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		ui.Fail(w, cmd+": not a number: "+args[0])
		return 0, ExitUsage
	}
	return id, ExitOK
}

// report prints err the way its kind calls for and returns the exit code.
// A failed save is a warning: the change still applies for this run.
func report(w io.Writer, op string, err error) int {
	var (
		nf *store.NotFoundError
		pe *store.PersistenceError
	)
	switch {
	case errors.As(err, &nf):
		ui.Fail(w, op+": "+err.Error())
		fmt.Fprintln(w, ui.Current().Muted.Render("Hint: run `tasks ls` to see valid ids"))
		return ExitUsage
	case errors.As(err, &pe):
		ui.Warn(w, op+": not saved: "+err.Error())
		return ExitError
	}
	ui.Fail(w, op+": "+err.Error())
	return ExitError
}
