package dialog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// File chooser view modes, matching the persisted values.
const (
	FileViewList    = "list"
	FileViewDetails = "details"
)

// FilePrefs persists file chooser preferences.
type FilePrefs interface {
	Bookmarks(ctx context.Context) ([]string, error)
	SetBookmarks(ctx context.Context, marks []string) error
	ViewMode(ctx context.Context) (string, error)
	SetViewMode(ctx context.Context, mode string) error
}

// FileFilter is a named set of shell patterns matched against base names.
type FileFilter struct {
	Name     string
	Patterns []string
}

// ParseFileFilter parses "Name | *.go *.txt". Without a bar the patterns
// double as the name.
func ParseFileFilter(spec string) FileFilter {
	name, patterns, found := strings.Cut(spec, "|")
	if !found {
		patterns = spec
	}
	f := FileFilter{Name: strings.TrimSpace(name), Patterns: strings.Fields(patterns)}
	if !found {
		f.Name = strings.Join(f.Patterns, " ")
	}
	return f
}

// Match reports whether name matches any pattern. An empty filter matches
// everything.
func (f FileFilter) Match(name string) bool {
	if len(f.Patterns) == 0 {
		return true
	}
	for _, p := range f.Patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

// FileSelectionConfig configures a FileSelectionDialog.
type FileSelectionConfig struct {
	Filename         string
	Multiple         bool
	Directory        bool
	Save             bool
	ConfirmOverwrite bool
	Filters          []string
	Prefs            FilePrefs
}

type fileEntry struct {
	Name     string
	Path     string
	IsDir    bool
	IsParent bool
	Size     int64
	ModTime  time.Time
}

type fileSelectionEntriesMsg struct {
	requestID int
	path      string
	entries   []fileEntry
	err       error
}

type filePrefsMsg struct {
	bookmarks []string
	viewMode  string
	err       error
}

type filePrefsSavedMsg struct {
	err error
}

var (
	parentKey    = key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "parent"))
	hiddenKey    = key.NewBinding(key.WithKeys("."), key.WithHelp(".", "hidden"))
	filterKey    = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter"))
	viewKey      = key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view"))
	bookmarkKey  = key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmark"))
	bookmarksKey = key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "bookmarks"))
)

// FileSelectionDialog is a filesystem picker for opening files, saving a
// file or choosing directories.
type FileSelectionDialog struct {
	BaseFocusableDialog
	cfg         FileSelectionConfig
	currentPath string
	preselect   string
	entries     []fileEntry
	selected    int
	offset      int
	marked      map[string]bool
	markOrder   []string
	loading     bool
	err         error
	requestID   int
	showHidden  bool
	filters     []FileFilter
	filterIdx   int
	viewMode    string
	bookmarks   []string
	showMarks   bool
	markCursor  int
	nameInput   textinput.Model
	confirming  bool
	status      string
	termHeight  int
	result      []string
}

// NewFileSelectionDialog constructs a dialog starting at cfg.Filename.
func NewFileSelectionDialog(title string, width, height int, cfg FileSelectionConfig) *FileSelectionDialog {
	dir, name := splitStartPath(cfg.Filename)

	elements := 3
	if cfg.Save {
		elements = 4
	}
	d := &FileSelectionDialog{
		BaseFocusableDialog: NewBaseFocusableDialog(title, width, height, DialogKindFileSelection, elements),
		cfg:                 cfg,
		currentPath:         dir,
		marked:              make(map[string]bool),
		viewMode:            FileViewList,
	}
	for _, spec := range cfg.Filters {
		if f := ParseFileFilter(spec); len(f.Patterns) > 0 {
			d.filters = append(d.filters, f)
		}
	}
	if cfg.Save {
		d.nameInput = textinput.New()
		d.nameInput.Prompt = "Name: "
		d.nameInput.SetValue(name)
		d.OnFocusChange(d.focusName)
	} else {
		d.preselect = name
	}
	d.SetFooterHints(HintsFromBindings(Keys.Accept, parentKey, hiddenKey, filterKey, viewKey, bookmarkKey, bookmarksKey)...)
	return d
}

// splitStartPath turns --filename into a directory and an optional name.
func splitStartPath(filename string) (dir, name string) {
	if filename == "" {
		dir, _ = os.Getwd()
		return dir, ""
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		abs = filename
	}
	if strings.HasSuffix(filename, string(os.PathSeparator)) {
		return abs, ""
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return abs, ""
	}
	return filepath.Dir(abs), filepath.Base(abs)
}

func (d *FileSelectionDialog) nameIndex() int { return 1 }

func (d *FileSelectionDialog) okIndex() int {
	if d.cfg.Save {
		return 2
	}
	return 1
}

func (d *FileSelectionDialog) focusName(index int) tea.Cmd {
	if index == d.nameIndex() {
		return d.nameInput.Focus()
	}
	d.nameInput.Blur()
	return nil
}

// Init begins loading the initial directory listing and the preferences.
func (d *FileSelectionDialog) Init() tea.Cmd {
	return tea.Batch(d.loadDirectory(d.currentPath), d.loadPrefs())
}

func (d *FileSelectionDialog) loadPrefs() tea.Cmd {
	prefs := d.cfg.Prefs
	if prefs == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		marks, err := prefs.Bookmarks(ctx)
		if err != nil {
			return filePrefsMsg{err: err}
		}
		mode, err := prefs.ViewMode(ctx)
		return filePrefsMsg{bookmarks: marks, viewMode: mode, err: err}
	}
}

func (d *FileSelectionDialog) saveBookmarks() tea.Cmd {
	prefs := d.cfg.Prefs
	if prefs == nil {
		return nil
	}
	marks := append([]string(nil), d.bookmarks...)
	return func() tea.Msg {
		return filePrefsSavedMsg{err: prefs.SetBookmarks(context.Background(), marks)}
	}
}

func (d *FileSelectionDialog) saveViewMode() tea.Cmd {
	prefs := d.cfg.Prefs
	if prefs == nil {
		return nil
	}
	mode := d.viewMode
	return func() tea.Msg {
		return filePrefsSavedMsg{err: prefs.SetViewMode(context.Background(), mode)}
	}
}

// Update receives asynchronous directory results, preferences and resizes.
func (d *FileSelectionDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.termHeight = msg.Height

	case fileSelectionEntriesMsg:
		if msg.requestID != d.requestID {
			return d, nil
		}
		d.loading = false
		d.err = msg.err
		if msg.err != nil {
			d.entries = nil
			return d, nil
		}
		d.currentPath = msg.path
		d.entries = msg.entries
		d.selected = 0
		d.offset = 0
		if d.preselect != "" {
			for i, e := range d.entries {
				if e.Name == d.preselect {
					d.selected = i
				}
			}
			d.preselect = ""
		}

	case filePrefsMsg:
		if msg.err != nil {
			d.status = "Preferences unavailable: " + msg.err.Error()
			return d, nil
		}
		d.bookmarks = msg.bookmarks
		if msg.viewMode == FileViewDetails {
			d.viewMode = FileViewDetails
		}

	case filePrefsSavedMsg:
		if msg.err != nil {
			d.status = "Saving preferences failed: " + msg.err.Error()
		}

	default:
		if d.cfg.Save && d.FocusedIndex() == d.nameIndex() {
			var cmd tea.Cmd
			d.nameInput, cmd = d.nameInput.Update(msg)
			return d, cmd
		}
	}
	return d, nil
}

func (d *FileSelectionDialog) loadDirectory(path string) tea.Cmd {
	abs := path
	if resolved, err := filepath.Abs(path); err == nil {
		abs = resolved
	}

	d.loading = true
	d.err = nil
	d.requestID++
	requestID := d.requestID
	showHidden := d.showHidden
	dirsOnly := d.cfg.Directory
	var filter FileFilter
	if len(d.filters) > 0 {
		filter = d.filters[d.filterIdx]
	}

	return func() tea.Msg {
		entries, err := readDirectoryEntries(abs, filter, showHidden, dirsOnly)
		return fileSelectionEntriesMsg{requestID: requestID, path: abs, entries: entries, err: err}
	}
}

func readDirectoryEntries(path string, filter FileFilter, showHidden, dirsOnly bool) ([]fileEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", path)
	}

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var results []fileEntry
	for _, entry := range dirEntries {
		name := entry.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}
		fullPath := filepath.Join(path, name)
		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			if target, err := os.Stat(fullPath); err == nil {
				isDir = target.IsDir()
			}
		}
		if !isDir && (dirsOnly || !filter.Match(name)) {
			continue
		}
		e := fileEntry{Name: name, Path: fullPath, IsDir: isDir}
		if fi, err := entry.Info(); err == nil {
			e.Size = fi.Size()
			e.ModTime = fi.ModTime()
		}
		results = append(results, e)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].IsDir != results[j].IsDir {
			return results[i].IsDir
		}
		return strings.ToLower(results[i].Name) < strings.ToLower(results[j].Name)
	})

	if parent := filepath.Dir(path); parent != path {
		results = append([]fileEntry{{Name: "..", Path: parent, IsDir: true, IsParent: true}}, results...)
	}
	return results, nil
}

func (d *FileSelectionDialog) current() (fileEntry, bool) {
	if d.selected < 0 || d.selected >= len(d.entries) {
		return fileEntry{}, false
	}
	return d.entries[d.selected], true
}

func (d *FileSelectionDialog) move(delta int) {
	d.selected = clampIndex(d.selected+delta, len(d.entries))
}

func (d *FileSelectionDialog) toggleMark() {
	e, ok := d.current()
	if !ok || e.IsParent || (e.IsDir && !d.cfg.Directory) {
		return
	}
	if d.marked[e.Path] {
		delete(d.marked, e.Path)
		for i, p := range d.markOrder {
			if p == e.Path {
				d.markOrder = append(d.markOrder[:i], d.markOrder[i+1:]...)
				break
			}
		}
		return
	}
	d.marked[e.Path] = true
	d.markOrder = append(d.markOrder, e.Path)
}

func (d *FileSelectionDialog) toggleBookmark() tea.Cmd {
	for i, b := range d.bookmarks {
		if b == d.currentPath {
			d.bookmarks = append(d.bookmarks[:i], d.bookmarks[i+1:]...)
			d.status = "Removed bookmark " + d.currentPath
			return d.saveBookmarks()
		}
	}
	d.bookmarks = append(d.bookmarks, d.currentPath)
	d.status = "Bookmarked " + d.currentPath
	return d.saveBookmarks()
}

// HandleKey processes navigation, selection and preference keys.
func (d *FileSelectionDialog) HandleKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	if d.confirming {
		return d.handleOverwriteKey(msg)
	}
	if d.showMarks {
		return d.handleBookmarksKey(msg)
	}
	if result, cmd := d.HandleBaseFocusableKey(msg); result != DialogResultNone || key.Matches(msg, Keys.Next, Keys.Prev) {
		return result, cmd
	}

	idx := d.FocusedIndex()
	switch {
	case idx == 0:
		return d.handleListKey(msg)
	case d.cfg.Save && idx == d.nameIndex():
		if key.Matches(msg, Keys.Accept) {
			return d.accept()
		}
		var cmd tea.Cmd
		d.nameInput, cmd = d.nameInput.Update(msg)
		return DialogResultNone, cmd
	}

	switch {
	case key.Matches(msg, Keys.Accept, Keys.Toggle):
		if idx == d.okIndex()+1 {
			return DialogResultCancel, nil
		}
		return d.accept()
	case key.Matches(msg, Keys.Left):
		return DialogResultNone, d.SetFocusedIndex(d.okIndex())
	case key.Matches(msg, Keys.Right):
		return DialogResultNone, d.SetFocusedIndex(d.okIndex() + 1)
	}
	return DialogResultNone, nil
}

func (d *FileSelectionDialog) handleListKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	page := d.visibleRows()
	switch {
	case key.Matches(msg, Keys.Up):
		d.move(-1)
	case key.Matches(msg, Keys.Down):
		d.move(1)
	case key.Matches(msg, Keys.PageUp):
		d.move(-page)
	case key.Matches(msg, Keys.PageDown):
		d.move(page)
	case key.Matches(msg, Keys.Home):
		d.move(-len(d.entries))
	case key.Matches(msg, Keys.End):
		d.move(len(d.entries))
	case key.Matches(msg, parentKey):
		return DialogResultNone, d.loadDirectory(filepath.Dir(d.currentPath))
	case key.Matches(msg, Keys.Toggle):
		if d.cfg.Multiple {
			d.toggleMark()
		}
	case key.Matches(msg, hiddenKey):
		d.showHidden = !d.showHidden
		return DialogResultNone, d.loadDirectory(d.currentPath)
	case key.Matches(msg, filterKey):
		if len(d.filters) > 1 {
			d.filterIdx = (d.filterIdx + 1) % len(d.filters)
			return DialogResultNone, d.loadDirectory(d.currentPath)
		}
	case key.Matches(msg, viewKey):
		if d.viewMode == FileViewList {
			d.viewMode = FileViewDetails
		} else {
			d.viewMode = FileViewList
		}
		return DialogResultNone, d.saveViewMode()
	case key.Matches(msg, bookmarkKey):
		return DialogResultNone, d.toggleBookmark()
	case key.Matches(msg, bookmarksKey):
		if len(d.bookmarks) > 0 {
			d.showMarks = true
			d.markCursor = 0
		}
	case key.Matches(msg, Keys.Accept):
		e, ok := d.current()
		if !ok {
			return d.accept()
		}
		if e.IsDir {
			return DialogResultNone, d.loadDirectory(e.Path)
		}
		if d.cfg.Save {
			d.nameInput.SetValue(e.Name)
			d.nameInput.CursorEnd()
			return DialogResultNone, d.SetFocusedIndex(d.nameIndex())
		}
		return d.accept()
	}
	return DialogResultNone, nil
}

func (d *FileSelectionDialog) handleBookmarksKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Cancel, bookmarksKey):
		d.showMarks = false
	case key.Matches(msg, Keys.Up):
		d.markCursor = clampIndex(d.markCursor-1, len(d.bookmarks))
	case key.Matches(msg, Keys.Down):
		d.markCursor = clampIndex(d.markCursor+1, len(d.bookmarks))
	case key.Matches(msg, Keys.Accept):
		d.showMarks = false
		if d.markCursor < len(d.bookmarks) {
			return DialogResultNone, d.loadDirectory(d.bookmarks[d.markCursor])
		}
	}
	return DialogResultNone, nil
}

func (d *FileSelectionDialog) handleOverwriteKey(msg tea.KeyMsg) (DialogResult, tea.Cmd) {
	switch {
	case msg.String() == "y", key.Matches(msg, Keys.Accept):
		d.confirming = false
		return DialogResultConfirm, nil
	case msg.String() == "n", key.Matches(msg, Keys.Cancel):
		d.confirming = false
		d.result = nil
	}
	return DialogResultNone, nil
}

// accept resolves the selection into result paths, or keeps the dialog open
// when nothing selectable is chosen.
func (d *FileSelectionDialog) accept() (DialogResult, tea.Cmd) {
	switch {
	case d.cfg.Save:
		name := strings.TrimSpace(d.nameInput.Value())
		if name == "" {
			d.status = "Enter a file name"
			return DialogResultNone, d.SetFocusedIndex(d.nameIndex())
		}
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(d.currentPath, name)
		}
		d.result = []string{path}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			d.nameInput.SetValue("")
			return DialogResultNone, d.loadDirectory(path)
		} else if err == nil && d.cfg.ConfirmOverwrite {
			d.confirming = true
			return DialogResultNone, nil
		}
		return DialogResultConfirm, nil

	case len(d.markOrder) > 0:
		d.result = append([]string(nil), d.markOrder...)
		return DialogResultConfirm, nil

	case d.cfg.Directory:
		path := d.currentPath
		if e, ok := d.current(); ok && !e.IsParent {
			path = e.Path
		}
		d.result = []string{path}
		return DialogResultConfirm, nil
	}

	e, ok := d.current()
	if !ok {
		return DialogResultNone, nil
	}
	if e.IsDir {
		return DialogResultNone, d.loadDirectory(e.Path)
	}
	d.result = []string{e.Path}
	return DialogResultConfirm, nil
}

func (d *FileSelectionDialog) visibleRows() int {
	chrome := 6
	if d.cfg.Save {
		chrome++
	}
	if d.status != "" || d.confirming {
		chrome++
	}
	return VisibleRows(d.ContentHeight(), d.termHeight, chrome, 12)
}

// View renders the directory listing.
func (d *FileSelectionDialog) View() string {
	width := d.ContentWidth()
	text := lipgloss.NewStyle().Foreground(d.Style.TextColor)
	dim := lipgloss.NewStyle().Foreground(d.Style.PlaceholderColor)

	header := runewidth.Truncate(d.currentPath, width-12, "…")
	if d.showHidden {
		header += dim.Render("  (hidden)")
	}
	if len(d.filters) > 0 {
		header += dim.Render("  [" + d.filters[d.filterIdx].Name + "]")
	}
	rows := []string{lipgloss.NewStyle().Bold(true).Foreground(d.Style.TitleColor).Render(header)}

	if d.showMarks {
		rows = append(rows, d.renderBookmarks(width))
	} else {
		rows = append(rows, d.renderEntries(width))
	}

	if d.cfg.Save {
		d.nameInput.Width = width - 8
		d.nameInput.TextStyle = text
		rows = append(rows, "", d.nameInput.View())
	}
	switch {
	case d.confirming:
		rows = append(rows, lipgloss.NewStyle().Foreground(d.Style.WarningColor).Bold(true).
			Render(fmt.Sprintf("%q exists. Overwrite? (y/n)", filepath.Base(d.result[0]))))
	case d.status != "":
		rows = append(rows, dim.Render(runewidth.Truncate(d.status, width, "…")))
	}
	rows = append(rows, renderButtons(d.Style, width, d.okCancel(true), buttonFocus(d.FocusedIndex(), d.okIndex())))
	return d.RenderBorder(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (d *FileSelectionDialog) renderEntries(width int) string {
	dim := lipgloss.NewStyle().Foreground(d.Style.PlaceholderColor)
	switch {
	case d.loading && len(d.entries) == 0:
		return dim.Render("Loading…")
	case d.err != nil:
		return lipgloss.NewStyle().Foreground(d.Style.ErrorColor).Render(d.err.Error())
	case len(d.entries) == 0:
		return dim.Render("Empty directory")
	}

	height := d.visibleRows()
	if d.selected < d.offset {
		d.offset = d.selected
	} else if d.selected >= d.offset+height {
		d.offset = d.selected - height + 1
	}
	end := d.offset + height
	if end > len(d.entries) {
		end = len(d.entries)
	}

	text := lipgloss.NewStyle().Foreground(d.Style.TextColor)
	lines := make([]string, 0, end-d.offset+1)
	for i := d.offset; i < end; i++ {
		e := d.entries[i]
		name := e.Name
		if e.IsDir && !e.IsParent {
			name += "/"
		}
		mark := "  "
		if d.marked[e.Path] {
			mark = "* "
		}
		pointer := "  "
		s := text
		if e.IsDir {
			s = s.Foreground(d.Style.ButtonColor)
		}
		if i == d.selected {
			pointer = "› "
			if d.FocusedIndex() == 0 {
				s = s.Foreground(d.Style.HighlightColor).Bold(true)
			}
		}

		line := pointer + mark
		if d.viewMode == FileViewDetails && !e.IsParent {
			size := ""
			if !e.IsDir {
				size = humanize.Bytes(uint64(e.Size))
			}
			modified := ""
			if !e.ModTime.IsZero() {
				modified = humanize.Time(e.ModTime)
			}
			nameWidth := width - 4 - 10 - 16
			if nameWidth < 8 {
				nameWidth = 8
			}
			line += cell(name, nameWidth) + fmt.Sprintf(" %9s %15s", size, runewidth.Truncate(modified, 15, "…"))
		} else {
			line += runewidth.Truncate(name, width-4, "…")
		}
		lines = append(lines, s.Render(line))
	}
	if d.offset > 0 || end < len(d.entries) {
		lines = append(lines, dim.Width(width).Align(lipgloss.Right).Render(scrollInfo(d.offset, end, len(d.entries))))
	}
	return strings.Join(lines, "\n")
}

func (d *FileSelectionDialog) renderBookmarks(width int) string {
	lines := []string{lipgloss.NewStyle().Foreground(d.Style.PlaceholderColor).Render("Bookmarks (enter jumps, esc closes)")}
	for i, b := range d.bookmarks {
		s := lipgloss.NewStyle().Foreground(d.Style.TextColor)
		pointer := "  "
		if i == d.markCursor {
			pointer = "› "
			s = s.Foreground(d.Style.HighlightColor).Bold(true)
		}
		lines = append(lines, s.Render(pointer+runewidth.Truncate(b, width-2, "…")))
	}
	return strings.Join(lines, "\n")
}

// CurrentPath returns the directory being shown.
func (d *FileSelectionDialog) CurrentPath() string { return d.currentPath }

// DialogResultValue returns the chosen paths.
func (d *FileSelectionDialog) DialogResultValue() (interface{}, error) {
	return append([]string(nil), d.result...), nil
}
