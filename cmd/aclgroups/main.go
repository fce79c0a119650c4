// aclgroups manages local security groups and NTFS permissions for a
// directory tree following a naming convention.
//
// Usage:
//
//	aclgroups <command> [options] <path>
//
// Commands:
//
//	install           Create the groups for a path and grant their ACEs
//	uninstall         Revoke the ACEs and delete the groups
//	create-groups     Create the groups only
//	delete-groups     Delete the groups only
//	grant             Grant ACEs for existing groups
//	revoke            Revoke ACEs
//	hard-reset        Rebuild the ACL of a tree from scratch
//	soft-reset        Remove unmanaged ACEs, keep well-known principals
//	find-noninherited Report descendants with explicit ACEs
//	list-groups       List the convention groups for a path
//
// Common options:
//
//	-config     Path to a TOML configuration file
//	-prefix     Group name prefix (default: AclGroup)
//	-delimiter  Group name delimiter (default: -)
//	-read       Suffix for the read tier (default: R, empty disables)
//	-write      Suffix for the write tier (default: W)
//	-modify     Suffix for the modify tier (default: M)
//	-full       Suffix for the full-control tier (default: F)
//	-log-dir    Directory for discovery log files (default: .)
//	-log-level  disabled, error, warn, info, debug or trace
//
// Example:
//
//	aclgroups install -desc "Shared data" -applies-to this-folder-subfolders-and-files D:\Shares\Data
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/backkem/aclgroups/pkg/config"
	"github.com/backkem/aclgroups/pkg/manager"
	"github.com/backkem/aclgroups/pkg/rights"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd := os.Args[1]; cmd {
	case "install":
		err = runInstall(os.Args[2:])
	case "uninstall":
		err = runUninstall(os.Args[2:])
	case "create-groups":
		err = runCreateGroups(os.Args[2:])
	case "delete-groups":
		err = runDeleteGroups(os.Args[2:])
	case "grant":
		err = runGrant(os.Args[2:])
	case "revoke":
		err = runRevoke(os.Args[2:])
	case "hard-reset":
		err = runReset(os.Args[2:], true)
	case "soft-reset":
		err = runReset(os.Args[2:], false)
	case "find-noninherited":
		err = runFindNonInherited(os.Args[2:])
	case "list-groups":
		err = runListGroups(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "aclgroups: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "aclgroups: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: aclgroups <command> [options] <path>")
	fmt.Fprintln(os.Stderr, "commands: install uninstall create-groups delete-groups grant revoke")
	fmt.Fprintln(os.Stderr, "          hard-reset soft-reset find-noninherited list-groups")
	fmt.Fprintln(os.Stderr, "run 'aclgroups <command> -h' for command options")
}

// commonFlags holds the options every command shares. Flag values
// default to the built-in configuration; values from -config apply only
// where the flag was not given on the command line.
type commonFlags struct {
	fs *flag.FlagSet

	configPath string
	prefix     string
	delimiter  string
	read       string
	write      string
	modify     string
	full       string
	logDir     string
	logLevel   string
}

func newCommonFlags(name string) *commonFlags {
	def := config.Default()
	c := &commonFlags{fs: flag.NewFlagSet(name, flag.ExitOnError)}
	c.fs.StringVar(&c.configPath, "config", "", "path to TOML configuration file")
	c.fs.StringVar(&c.prefix, "prefix", def.Prefix, "group name prefix")
	c.fs.StringVar(&c.delimiter, "delimiter", def.Delimiter, "group name delimiter")
	c.fs.StringVar(&c.read, "read", def.Suffixes.Read, "read tier suffix (empty disables)")
	c.fs.StringVar(&c.write, "write", def.Suffixes.Write, "write tier suffix (empty disables)")
	c.fs.StringVar(&c.modify, "modify", def.Suffixes.Modify, "modify tier suffix (empty disables)")
	c.fs.StringVar(&c.full, "full", def.Suffixes.FullControl, "full-control tier suffix (empty disables)")
	c.fs.StringVar(&c.logDir, "log-dir", def.LogDir, "directory for discovery log files")
	c.fs.StringVar(&c.logLevel, "log-level", def.LogLevel, "log level")
	return c
}

// parse parses args, layers the config file under the flags and returns
// the effective configuration plus the single positional path argument.
func (c *commonFlags) parse(args []string) (config.Config, manager.Target, error) {
	if err := c.fs.Parse(args); err != nil {
		return config.Config{}, manager.Target{}, err
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, manager.Target{}, err
	}

	set := make(map[string]bool)
	c.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["prefix"] {
		cfg.Prefix = c.prefix
	}
	if set["delimiter"] {
		cfg.Delimiter = c.delimiter
	}
	if set["read"] {
		cfg.Suffixes.Read = c.read
	}
	if set["write"] {
		cfg.Suffixes.Write = c.write
	}
	if set["modify"] {
		cfg.Suffixes.Modify = c.modify
	}
	if set["full"] {
		cfg.Suffixes.FullControl = c.full
	}
	if set["log-dir"] {
		cfg.LogDir = c.logDir
	}
	if set["log-level"] {
		cfg.LogLevel = c.logLevel
	}

	if c.fs.NArg() != 1 {
		return config.Config{}, manager.Target{}, fmt.Errorf("%s: expected exactly one path argument", c.fs.Name())
	}
	return cfg, manager.NewTarget(c.fs.Arg(0)), nil
}

func buildManager(cfg config.Config, rollback bool) (*manager.Manager, error) {
	factory, err := cfg.LoggerFactory()
	if err != nil {
		return nil, err
	}
	dir, store, err := newCollaborators()
	if err != nil {
		return nil, err
	}
	return manager.New(dir, store,
		manager.WithConvention(cfg.Convention()),
		manager.WithLoggerFactory(factory),
		manager.WithLogDir(cfg.LogDir),
		manager.WithRollback(rollback),
	), nil
}

func printRecords(records []manager.GroupRecord) {
	for _, r := range records {
		if r.Err != nil {
			fmt.Printf("%s\t%s\t%v\n", r.Name, r.Status, r.Err)
			continue
		}
		fmt.Printf("%s\t%s\n", r.Name, r.Status)
	}
}

func runInstall(args []string) error {
	common := newCommonFlags("install")
	desc := common.fs.String("desc", "", "description for created groups")
	scope := common.fs.String("applies-to", "this-folder-subfolders-and-files", "ACE inheritance scope")
	rollback := common.fs.Bool("rollback", false, "undo completed steps when a later step fails")
	cfg, target, err := common.parse(args)
	if err != nil {
		return err
	}
	appliesTo, err := rights.ParseAppliesTo(*scope)
	if err != nil {
		return err
	}
	description := *desc
	if description == "" {
		description = cfg.Description
	}

	mgr, err := buildManager(cfg, *rollback)
	if err != nil {
		return err
	}
	records, err := mgr.Install(target, cfg.TierSuffixes(), description, appliesTo)
	printRecords(records)
	return err
}

func runUninstall(args []string) error {
	common := newCommonFlags("uninstall")
	all := common.fs.Bool("all", false, "remove every group and ACE matching the convention stem")
	cfg, target, err := common.parse(args)
	if err != nil {
		return err
	}
	mgr, err := buildManager(cfg, false)
	if err != nil {
		return err
	}
	records, err := mgr.Uninstall(target, cfg.TierSuffixes(), *all)
	printRecords(records)
	return err
}

func runCreateGroups(args []string) error {
	common := newCommonFlags("create-groups")
	desc := common.fs.String("desc", "", "description for created groups")
	cfg, target, err := common.parse(args)
	if err != nil {
		return err
	}
	description := *desc
	if description == "" {
		description = cfg.Description
	}
	mgr, err := buildManager(cfg, false)
	if err != nil {
		return err
	}
	records, err := mgr.CreateGroups(target, cfg.TierSuffixes(), description)
	printRecords(records)
	return err
}

func runDeleteGroups(args []string) error {
	common := newCommonFlags("delete-groups")
	all := common.fs.Bool("all", false, "delete every group matching the convention stem")
	cfg, target, err := common.parse(args)
	if err != nil {
		return err
	}
	mgr, err := buildManager(cfg, false)
	if err != nil {
		return err
	}
	records, err := mgr.DeleteGroups(target, cfg.TierSuffixes(), *all)
	printRecords(records)
	return err
}

func runGrant(args []string) error {
	common := newCommonFlags("grant")
	scope := common.fs.String("applies-to", "this-folder-subfolders-and-files", "ACE inheritance scope")
	cfg, target, err := common.parse(args)
	if err != nil {
		return err
	}
	appliesTo, err := rights.ParseAppliesTo(*scope)
	if err != nil {
		return err
	}
	mgr, err := buildManager(cfg, false)
	if err != nil {
		return err
	}
	return mgr.GrantPermissions(target, cfg.TierSuffixes(), appliesTo)
}

func runRevoke(args []string) error {
	common := newCommonFlags("revoke")
	all := common.fs.Bool("all", false, "revoke every ACE whose principal matches the convention stem")
	cfg, target, err := common.parse(args)
	if err != nil {
		return err
	}
	mgr, err := buildManager(cfg, false)
	if err != nil {
		return err
	}
	return mgr.RevokePermissions(target, cfg.TierSuffixes(), *all)
}

func runReset(args []string, hard bool) error {
	name := "soft-reset"
	if hard {
		name = "hard-reset"
	}
	common := newCommonFlags(name)
	limitOwner := common.fs.Bool("limit-owner", false, "restrict CREATOR OWNER to the modify tier")
	cfg, target, err := common.parse(args)
	if err != nil {
		return err
	}
	mgr, err := buildManager(cfg, false)
	if err != nil {
		return err
	}
	// Resets touch objects the caller may not have access to through the
	// DACL alone.
	return withBackupPrivileges(func() error {
		if hard {
			return mgr.HardReset(target, *limitOwner)
		}
		return mgr.SoftReset(target, *limitOwner)
	})
}

func runFindNonInherited(args []string) error {
	common := newCommonFlags("find-noninherited")
	depth := common.fs.Int("depth", 1, "levels below the target to scan (direct children = 1)")
	cfg, target, err := common.parse(args)
	if err != nil {
		return err
	}
	mgr, err := buildManager(cfg, false)
	if err != nil {
		return err
	}
	var paths []string
	var logPath string
	err = withBackupPrivileges(func() error {
		var err error
		paths, logPath, err = mgr.FindNonInheritedDirectories(target, *depth)
		return err
	})
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	fmt.Fprintf(os.Stderr, "report written to %s\n", logPath)
	return nil
}

func runListGroups(args []string) error {
	common := newCommonFlags("list-groups")
	cfg, target, err := common.parse(args)
	if err != nil {
		return err
	}
	mgr, err := buildManager(cfg, false)
	if err != nil {
		return err
	}
	groups, err := mgr.ListGroups(target)
	if err != nil {
		return err
	}
	for _, g := range groups {
		fmt.Printf("%s\t%s\n", g.Name, g.Description)
	}
	return nil
}
