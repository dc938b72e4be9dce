package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats results for output.
type Formatter interface {
	FormatCheck(w io.Writer, report *CheckReport) error
	FormatUsers(w io.Writer, users []User) error
	FormatUser(w io.Writer, user *User) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// FormatCheck formats a probe report as a table of results.
func (f *HumanFormatter) FormatCheck(w io.Writer, report *CheckReport) error {
	// Calculate column widths
	maxNameLen := 4 // "NAME"
	maxPathLen := 4 // "PATH"
	for i := range report.Results {
		r := &report.Results[i]
		if len(r.Name) > maxNameLen {
			maxNameLen = len(r.Name)
		}
		if len(r.Path) > maxPathLen {
			maxPathLen = len(r.Path)
		}
	}

	if !f.Quiet {
		_, _ = fmt.Fprintf(w, "%-4s  %-*s  %-6s  %-*s  %4s  %4s\n", "", maxNameLen, "NAME", "METHOD", maxPathLen, "PATH", "WANT", "GOT")
		_, _ = fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s\n",
			strings.Repeat("-", 4), strings.Repeat("-", maxNameLen), strings.Repeat("-", 6),
			strings.Repeat("-", maxPathLen), strings.Repeat("-", 4), strings.Repeat("-", 4))
	}

	for i := range report.Results {
		r := &report.Results[i]
		if f.Quiet && r.Passed() {
			continue
		}

		mark := "PASS"
		if !r.Passed() {
			mark = "FAIL"
		}
		_, _ = fmt.Fprintf(w, "%-4s  %-*s  %-6s  %-*s  %4d  %4d\n", mark, maxNameLen, r.Name, r.Method, maxPathLen, r.Path, r.Want, r.Got)
		if r.Err != nil {
			_, _ = fmt.Fprintf(w, "      %v\n", r.Err)
		}
	}

	_, _ = fmt.Fprintf(w, "\n%d passed, %d failed\n", report.Passed(), report.Failed())
	return nil
}

// FormatUsers formats a user list as a table.
func (f *HumanFormatter) FormatUsers(w io.Writer, users []User) error {
	if len(users) == 0 {
		_, _ = fmt.Fprintln(w, "No users found")
		return nil
	}

	maxNameLen := 4  // "NAME"
	maxEmailLen := 5 // "EMAIL"
	for i := range users {
		if len(users[i].Name) > maxNameLen {
			maxNameLen = len(users[i].Name)
		}
		if len(users[i].Email) > maxEmailLen {
			maxEmailLen = len(users[i].Email)
		}
	}

	_, _ = fmt.Fprintf(w, "%-4s  %-*s  %-*s  %s\n", "ID", maxNameLen, "NAME", maxEmailLen, "EMAIL", "ROLE")
	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s\n",
		strings.Repeat("-", 4), strings.Repeat("-", maxNameLen), strings.Repeat("-", maxEmailLen), strings.Repeat("-", 5))

	for i := range users {
		u := &users[i]
		_, _ = fmt.Fprintf(w, "%-4d  %-*s  %-*s  %s\n", u.ID, maxNameLen, u.Name, maxEmailLen, u.Email, u.Role)
	}

	return nil
}

// FormatUser formats a single user as human-readable text.
func (f *HumanFormatter) FormatUser(w io.Writer, user *User) error {
	_, _ = fmt.Fprintf(w, "ID:    %d\n", user.ID)
	_, _ = fmt.Fprintf(w, "Name:  %s\n", user.Name)
	_, _ = fmt.Fprintf(w, "Email: %s\n", user.Email)
	_, _ = fmt.Fprintf(w, "Role:  %s\n", user.Role)
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatCheck formats a probe report as JSON.
func (f *JSONFormatter) FormatCheck(w io.Writer, report *CheckReport) error {
	type jsonResult struct {
		Name   string `json:"name"`
		Method string `json:"method"`
		Path   string `json:"path"`
		Want   int    `json:"want"`
		Got    int    `json:"got"`
		Passed bool   `json:"passed"`
		Error  string `json:"error,omitempty"`
	}

	output := struct {
		Results []jsonResult `json:"results"`
		Passed  int          `json:"passed"`
		Failed  int          `json:"failed"`
	}{
		Results: make([]jsonResult, len(report.Results)),
		Passed:  report.Passed(),
		Failed:  report.Failed(),
	}

	for i, r := range report.Results {
		jr := jsonResult{
			Name:   r.Name,
			Method: r.Method,
			Path:   r.Path,
			Want:   r.Want,
			Got:    r.Got,
			Passed: r.Passed(),
		}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		output.Results[i] = jr
	}

	return writeJSON(w, output)
}

// FormatUsers formats a user list as JSON.
func (f *JSONFormatter) FormatUsers(w io.Writer, users []User) error {
	output := struct {
		Users []User `json:"users"`
	}{Users: users}
	return writeJSON(w, output)
}

// FormatUser formats a single user as JSON.
func (f *JSONFormatter) FormatUser(w io.Writer, user *User) error {
	return writeJSON(w, user)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatProfileList formats a list of profiles as human-readable text.
func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	// Calculate column widths
	maxNameLen := 4     // "NAME"
	maxEndpointLen := 8 // "ENDPOINT"
	for i := range profiles {
		if len(profiles[i].Name) > maxNameLen {
			maxNameLen = len(profiles[i].Name)
		}
		if len(profiles[i].Endpoint) > maxEndpointLen {
			maxEndpointLen = len(profiles[i].Endpoint)
		}
	}
	if maxNameLen > 20 {
		maxNameLen = 20
	}
	if maxEndpointLen > 50 {
		maxEndpointLen = 50
	}

	// Print header
	_, _ = fmt.Fprintf(w, "  %-*s  %-*s  %s\n", maxNameLen, "NAME", maxEndpointLen, "ENDPOINT", "TOKEN")
	_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", maxEndpointLen), strings.Repeat("-", 20))

	// Print profiles
	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}

		name := p.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}

		endpoint := p.Endpoint
		if len(endpoint) > maxEndpointLen {
			endpoint = endpoint[:maxEndpointLen-3] + "..."
		}

		token := maskSecret(p.Token, showSecrets)

		_, _ = fmt.Fprintf(w, "%s %-*s  %-*s  %s\n", marker, maxNameLen, name, maxEndpointLen, endpoint, token)
	}

	return nil
}

// FormatProfileShow formats a single profile as human-readable text.
func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	_, _ = fmt.Fprintf(w, "Name:     %s", profile.Name)
	if isDefault {
		_, _ = fmt.Fprintf(w, " (default)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Endpoint: %s\n", profile.Endpoint)
	_, _ = fmt.Fprintf(w, "Token:    %s\n", maskSecret(profile.Token, showSecrets))
	return nil
}

// FormatProfileList formats a list of profiles as JSON.
func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	type jsonProfile struct {
		Name     string `json:"name"`
		Endpoint string `json:"endpoint"`
		Token    string `json:"token,omitempty"`
		Default  bool   `json:"default,omitempty"`
	}

	output := struct {
		Profiles []jsonProfile `json:"profiles"`
	}{
		Profiles: make([]jsonProfile, len(profiles)),
	}

	for i := range profiles {
		p := &profiles[i]
		jp := jsonProfile{
			Name:     p.Name,
			Endpoint: p.Endpoint,
			Default:  p.Name == defaultName,
		}
		if showSecrets {
			jp.Token = p.Token
		} else {
			jp.Token = maskSecret(p.Token, false)
		}
		output.Profiles[i] = jp
	}

	return writeJSON(w, output)
}

// FormatProfileShow formats a single profile as JSON.
func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	output := struct {
		Name     string `json:"name"`
		Endpoint string `json:"endpoint"`
		Token    string `json:"token"`
		Default  bool   `json:"default"`
	}{
		Name:     profile.Name,
		Endpoint: profile.Endpoint,
		Default:  isDefault,
	}

	if showSecrets {
		output.Token = profile.Token
	} else {
		output.Token = maskSecret(profile.Token, false)
	}

	return writeJSON(w, output)
}

// maskSecret masks a secret string, showing only first 4 and last 4 characters.
// If showSecrets is true, returns the original value.
// If the secret is too short, returns all asterisks.
func maskSecret(secret string, showSecrets bool) string {
	if showSecrets {
		return secret
	}
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
