package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/sem-cli/internal/resource"
)

const timeLayout = "2006-01-02 15:04:05 -0700"

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderPairs renders a two column key/value table without a header.
func renderPairs(pairs [][2]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	for _, p := range pairs {
		tw.AppendRow(table.Row{p[0], p[1]})
	}
	return tw.Render()
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// list prints rows as a table, or v as JSON. hint is printed instead of an
// empty table.
func (a *app) list(cmd *cobra.Command, v any, headers []string, rows [][]string, aligns []columnAlignment, hint string) error {
	if a.jsonOutput() {
		return writeJSON(cmd, v)
	}
	if len(rows) == 0 && hint != "" {
		color.New(color.FgCyan).Fprintln(cmd.OutOrStdout(), hint)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
	return nil
}

func (a *app) info(cmd *cobra.Command, v any, pairs [][2]string) error {
	if a.jsonOutput() {
		return writeJSON(cmd, v)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderPairs(pairs))
	return nil
}

func (a *app) success(cmd *cobra.Command, format string, args ...any) {
	if a.jsonOutput() {
		return
	}
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ "+format+"\n", args...)
}

func (a *app) warn(cmd *cobra.Command, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "⚠ "+format+"\n", args...)
}

// cascade reports the outcome of copying shared configuration content.
func (a *app) cascade(cmd *cobra.Command, result resource.CascadeResult, err error, what string) error {
	if err != nil {
		switch {
		case result.Attached && result.Planned() == 0:
			a.warn(cmd, "%s failed after the shared configuration was attached; nothing was copied. Remove it before adding it again",
				what)
		case result.Attached:
			a.warn(cmd, "%s stopped after %d of %d copies; the shared configuration stays attached and created items were kept. Remove it before adding it again",
				what, result.Created(), result.Planned())
		case result.Created() > 0:
			a.warn(cmd, "%s stopped after %d of %d copies; created items were kept",
				what, result.Created(), result.Planned())
		}
		return err
	}
	if a.jsonOutput() {
		return writeJSON(cmd, cascadeOf(result))
	}
	a.success(cmd, "%s: %d environment variables and %d files created",
		what, len(result.EnvVars), len(result.ConfigFiles))
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timeLayout)
}

func formatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// masked hides the content of encrypted values in tables.
func masked(content string, encrypted bool) string {
	if encrypted {
		return "*****"
	}
	return content
}

type orgView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func orgOf(o resource.Organization) orgView {
	return orgView{ID: o.ID(), Username: o.Username(), Name: o.Name(), CreatedAt: o.CreatedAt(), UpdatedAt: o.UpdatedAt()}
}

type teamView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Permission  string    `json:"permission"`
	Members     int       `json:"members"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func teamOf(t resource.Team) teamView {
	return teamView{
		ID:          t.ID(),
		Name:        t.FullName(),
		Permission:  string(t.Permission()),
		Members:     t.MemberCount(),
		Description: t.Description(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

type projectView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	URL          string    `json:"html_url,omitempty"`
	RepoProvider string    `json:"repo_provider,omitempty"`
	RepoOwner    string    `json:"repo_owner,omitempty"`
	RepoName     string    `json:"repo_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func projectOf(p resource.Project) projectView {
	return projectView{
		ID:           p.ID(),
		Name:         p.FullName(),
		URL:          p.HTMLURL(),
		RepoProvider: p.RepoProvider(),
		RepoOwner:    p.RepoOwner(),
		RepoName:     p.RepoName(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

type sharedConfigView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func sharedConfigOf(c resource.SharedConfig) sharedConfigView {
	return sharedConfigView{ID: c.ID(), Name: c.FullName(), Description: c.Description(), CreatedAt: c.CreatedAt(), UpdatedAt: c.UpdatedAt()}
}

type envVarView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	Encrypted bool   `json:"encrypted"`
}

type fileView struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	Encrypted bool   `json:"encrypted"`
}

type userView struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

type cascadeView struct {
	EnvVars     []envVarView `json:"env_vars"`
	ConfigFiles []fileView   `json:"config_files"`
}

func cascadeOf(r resource.CascadeResult) cascadeView {
	return cascadeView{EnvVars: envVarViews(r.EnvVars), ConfigFiles: fileViews(r.ConfigFiles)}
}

func (a *app) printOrgs(cmd *cobra.Command, orgs []resource.Organization) error {
	views := make([]orgView, 0, len(orgs))
	rows := make([][]string, 0, len(orgs))
	for _, o := range orgs {
		views = append(views, orgOf(o))
		rows = append(rows, []string{o.ID(), o.Username(), o.Name()})
	}
	return a.list(cmd, views, []string{"ID", "USERNAME", "NAME"}, rows, nil, "You are not a member of any organization.")
}

func (a *app) printOrg(cmd *cobra.Command, o resource.Organization) error {
	return a.info(cmd, orgOf(o), [][2]string{
		{"ID", o.ID()},
		{"Username", o.Username()},
		{"Name", o.Name()},
		{"Created", formatTime(o.CreatedAt())},
		{"Updated", formatTime(o.UpdatedAt())},
	})
}

func (a *app) printTeams(cmd *cobra.Command, teams []resource.Team) error {
	views := make([]teamView, 0, len(teams))
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		views = append(views, teamOf(t))
		rows = append(rows, []string{t.ID(), t.FullName(), string(t.Permission()), t.Members()})
	}
	return a.list(cmd, views, []string{"ID", "NAME", "PERMISSION", "MEMBERS"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
		"No teams yet. Create one with `sem teams create <org>/<name>`.")
}

func (a *app) printTeam(cmd *cobra.Command, t resource.Team) error {
	return a.info(cmd, teamOf(t), [][2]string{
		{"ID", t.ID()},
		{"Name", t.FullName()},
		{"Permission", string(t.Permission())},
		{"Members", t.Members() + " members"},
		{"Description", t.Description()},
		{"Created", formatTime(t.CreatedAt())},
		{"Updated", formatTime(t.UpdatedAt())},
	})
}

func (a *app) printProjects(cmd *cobra.Command, projects []resource.Project, hint string) error {
	views := make([]projectView, 0, len(projects))
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		views = append(views, projectOf(p))
		rows = append(rows, []string{p.ID(), p.FullName(), p.HTMLURL()})
	}
	return a.list(cmd, views, []string{"ID", "NAME", "URL"}, rows, nil, hint)
}

func (a *app) printProject(cmd *cobra.Command, p resource.Project) error {
	return a.info(cmd, projectOf(p), [][2]string{
		{"ID", p.ID()},
		{"Name", p.FullName()},
		{"Repository", repoOf(p)},
		{"URL", p.HTMLURL()},
		{"Created", formatTime(p.CreatedAt())},
		{"Updated", formatTime(p.UpdatedAt())},
	})
}

func repoOf(p resource.Project) string {
	if p.RepoOwner() == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s/%s", p.RepoProvider(), p.RepoOwner(), p.RepoName())
}

func (a *app) printSharedConfigs(cmd *cobra.Command, configs []resource.SharedConfig, hint string) error {
	views := make([]sharedConfigView, 0, len(configs))
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		views = append(views, sharedConfigOf(c))
		rows = append(rows, []string{c.ID(), c.FullName()})
	}
	return a.list(cmd, views, []string{"ID", "NAME"}, rows, nil, hint)
}

func (a *app) printSharedConfig(cmd *cobra.Command, c resource.SharedConfig, envVars []resource.EnvVar, files []resource.ConfigFile) error {
	if a.jsonOutput() {
		return writeJSON(cmd, struct {
			sharedConfigView
			EnvVars     []envVarView `json:"env_vars"`
			ConfigFiles []fileView   `json:"config_files"`
		}{sharedConfigOf(c), envVarViews(envVars), fileViews(files)})
	}
	return a.info(cmd, nil, [][2]string{
		{"ID", c.ID()},
		{"Name", c.FullName()},
		{"Description", c.Description()},
		{"Config Files", strconv.Itoa(len(files))},
		{"Environment Variables", strconv.Itoa(len(envVars))},
		{"Created", formatTime(c.CreatedAt())},
		{"Updated", formatTime(c.UpdatedAt())},
	})
}

func envVarViews(envVars []resource.EnvVar) []envVarView {
	views := make([]envVarView, 0, len(envVars))
	for _, e := range envVars {
		views = append(views, envVarView{ID: e.ID(), Name: e.Name(), Content: e.Content(), Encrypted: e.Encrypted()})
	}
	return views
}

func fileViews(files []resource.ConfigFile) []fileView {
	views := make([]fileView, 0, len(files))
	for _, f := range files {
		views = append(views, fileView{ID: f.ID(), Path: f.Path(), Encrypted: f.Encrypted()})
	}
	return views
}

func (a *app) printEnvVars(cmd *cobra.Command, envVars []resource.EnvVar) error {
	rows := make([][]string, 0, len(envVars))
	for _, e := range envVars {
		rows = append(rows, []string{e.ID(), e.Name(), formatBool(e.Encrypted()), masked(e.Content(), e.Encrypted())})
	}
	return a.list(cmd, envVarViews(envVars), []string{"ID", "NAME", "ENCRYPTED", "CONTENT"}, rows, nil,
		"No environment variables.")
}

func (a *app) printFiles(cmd *cobra.Command, files []resource.ConfigFile) error {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{f.ID(), f.Path(), formatBool(f.Encrypted())})
	}
	return a.list(cmd, fileViews(files), []string{"ID", "PATH", "ENCRYPTED"}, rows, nil,
		"No configuration files.")
}

func (a *app) printUsers(cmd *cobra.Command, users []resource.User) error {
	views := make([]userView, 0, len(users))
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		views = append(views, userView{Username: u.Username(), Name: u.Name()})
		rows = append(rows, []string{u.Username(), u.Name()})
	}
	return a.list(cmd, views, []string{"USERNAME", "NAME"}, rows, nil, "No members.")
}
