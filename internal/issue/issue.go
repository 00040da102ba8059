// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigNotFoundId Id = iota + 1
	ConfigLoadFailedId
	ConfigInvalidId
	AppNotFoundId
	WindowNotFoundId
	DisplayNotFoundId
	PermissionDeniedId
	DaemonNotRunningId
	DaemonAlreadyRunningId
	SocketUnreachableId
	HotkeyConflictId
	InvalidShortcutActionId
	ChecksumMismatchId
	ArtifactNotFoundId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configNotFoundIssue = &Issue{
		id: ConfigNotFoundId,
		mdMsg: `
# No config file found

cwm looked for a configuration file and found none. This is not an
error by itself — cwm runs on built-in defaults until one exists.

## Things you can try
- Write the default config:
~~~
$ cwm config default
~~~
- Check where cwm expects it:
~~~
$ cwm config path
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The config file exists but could not be read or parsed.

## Things you can try
- Validate it:
~~~
$ cwm config verify
~~~
- Inspect it directly:
~~~
$ cwm config show
~~~
- Reset to defaults if it is unrecoverable:
~~~
$ cwm config reset
~~~`,
	}

	configInvalidIssue = &Issue{
		id: ConfigInvalidId,
		mdMsg: `
# Configuration is invalid

` + "`cwm config verify`" + ` found one or more problems with the current
configuration: a malformed shortcut key combination, an app rule with no
prefix, or a display alias colliding with a reserved name
(` + "`builtin`" + `, ` + "`external`" + `, ` + "`main`" + `, ` + "`secondary`" + `).

## Things you can try
- Run ` + "`cwm config verify`" + ` for the specific field that failed
- Fix the offending entry with ` + "`cwm config set <key> <value>`" + `
- Fall back to defaults with ` + "`cwm config reset`" + ``,
	}

	appNotFoundIssue = &Issue{
		id: AppNotFoundId,
		mdMsg: `
# No matching application

None of the supplied app names matched a running application, exactly,
by prefix, by regex, or within the fuzzy-match threshold.

## Things you can try
- List running apps:
~~~
$ cwm list apps
~~~
- Pass ` + "`--launch`" + ` to start the app instead of failing:
~~~
$ cwm focus Safari --launch
~~~
- Raise ` + "`fuzzy_threshold`" + ` in the config if the name was close`,
	}

	windowNotFoundIssue = &Issue{
		id: WindowNotFoundId,
		mdMsg: `
# No window for that application

The application is running but cwm could not find (or converge to) a
usable window for it, even after the configured retry policy ran out.

## Things you can try
- Give the app more time to finish launching its window, then retry
- Check ` + "`cwm check-permissions`" + ` — a denied Accessibility grant
  can make windows invisible to cwm
- Increase ` + "`retry.count`" + ` / ` + "`retry.delay_ms`" + ` in the config`,
	}

	displayNotFoundIssue = &Issue{
		id: DisplayNotFoundId,
		mdMsg: `
# No matching display

The requested display target — an index, an alias, or ` + "`next`" + `/` + "`prev`" + `
— did not resolve to a connected display.

## Things you can try
- List connected displays:
~~~
$ cwm list displays --detailed
~~~
- Check your display aliases:
~~~
$ cwm list aliases
~~~
- Remember display indices are 1-based at the CLI`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Accessibility permission denied

macOS is refusing cwm's Accessibility API calls. Without this
permission cwm cannot read window lists or move windows.

## Things you can try
- Grant access in System Settings → Privacy & Security → Accessibility
- Re-prompt the system dialog:
~~~
$ cwm check-permissions --prompt
~~~
- If cwm was reinstalled, remove and re-add it from that list — macOS
  sometimes keeps a stale, unchecked entry around`,
	}

	daemonNotRunningIssue = &Issue{
		id: DaemonNotRunningId,
		mdMsg: `
# Daemon is not running

This operation needs the background daemon (hotkeys, app-launch rules,
the IPC socket) and it is not up.

## Things you can try
- Start it:
~~~
$ cwm daemon start
~~~
- Run it attached, to see its logs directly:
~~~
$ cwm daemon foreground
~~~`,
	}

	daemonAlreadyRunningIssue = &Issue{
		id: DaemonAlreadyRunningId,
		mdMsg: `
# Daemon is already running

Another cwm daemon process already holds the pidfile.

## Things you can try
- Check who:
~~~
$ cwm daemon status
~~~
- Restart it instead of starting a second one:
~~~
$ cwm daemon restart
~~~`,
	}

	socketUnreachableIssue = &Issue{
		id: SocketUnreachableId,
		mdMsg: `
# Cannot reach the daemon socket

cwm could not connect to the daemon's Unix socket. Either the daemon is
down or a stale socket file is left over from an unclean exit.

## Things you can try
- Check whether the daemon is actually running:
~~~
$ cwm daemon status
~~~
- Restart it, which removes and re-binds the socket:
~~~
$ cwm daemon restart
~~~`,
	}

	hotkeyConflictIssue = &Issue{
		id: HotkeyConflictId,
		mdMsg: `
# Hotkey registration failed

One of the configured shortcuts' key combination is already bound by
another application (or another cwm instance), so the daemon refused to
start with it registered.

## Things you can try
- Pick a different combination for the conflicting shortcut's
  ` + "`keys`" + ` entry in the config file:
~~~
$ cwm config path
~~~
- Re-record it interactively:
~~~
$ cwm record-shortcut <name>
~~~`,
	}

	invalidShortcutActionIssue = &Issue{
		id: InvalidShortcutActionId,
		mdMsg: `
# Invalid shortcut or app-rule action

The action string attached to a shortcut or app rule does not parse
against the grammar (` + "`focus`" + `, ` + "`maximize`" + `,
` + "`move_display:<target>`" + `, ` + "`resize:<size>`" + `).

## Things you can try
- Check the action's spelling against the grammar above
- Fix the entry's ` + "`action`" + ` in the config file, then check it with:
~~~
$ cwm config verify
~~~`,
	}

	checksumMismatchIssue = &Issue{
		id: ChecksumMismatchId,
		mdMsg: `
# Update artifact checksum mismatch

The downloaded release artifact's SHA-256 does not match the published
checksums.txt entry. cwm refuses to install a binary it cannot verify.

## Things you can try
- Re-download the release artifact and checksums.txt
- Confirm you are applying the artifact for your platform/arch
- Verify manually with ` + "`shasum -a 256`" + ``,
	}

	artifactNotFoundIssue = &Issue{
		id: ArtifactNotFoundId,
		mdMsg: `
# Update artifact not found

` + "`cwm update run`" + ` expects an already-downloaded release archive and
its ` + "`checksums.txt`" + ` sitting next to each other; neither was found at
the given path.

## Things you can try
- Pass the archive's and the checksums file's paths explicitly:
~~~
$ cwm update run ./cwm_1.2.0_darwin_arm64.tar.gz ./checksums.txt
~~~
- Confirm ` + "`checksums.txt`" + ` was downloaded alongside it`,
	}

	issues = map[Id]*Issue{
		configNotFoundIssue.Id():        configNotFoundIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		configInvalidIssue.Id():         configInvalidIssue,
		appNotFoundIssue.Id():           appNotFoundIssue,
		windowNotFoundIssue.Id():        windowNotFoundIssue,
		displayNotFoundIssue.Id():       displayNotFoundIssue,
		permissionDeniedIssue.Id():      permissionDeniedIssue,
		daemonNotRunningIssue.Id():      daemonNotRunningIssue,
		daemonAlreadyRunningIssue.Id():  daemonAlreadyRunningIssue,
		socketUnreachableIssue.Id():     socketUnreachableIssue,
		hotkeyConflictIssue.Id():        hotkeyConflictIssue,
		invalidShortcutActionIssue.Id(): invalidShortcutActionIssue,
		checksumMismatchIssue.Id():      checksumMismatchIssue,
		artifactNotFoundIssue.Id():      artifactNotFoundIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
