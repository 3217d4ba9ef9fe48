package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/WictorCampos/playlist-inteligente/internal/playlist"
)

type Options struct {
	JSON    bool
	Plain   bool
	Quiet   bool
	Verbose bool
	NoColor bool

	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

type Output struct {
	JSON    bool
	Plain   bool
	Quiet   bool
	Verbose bool

	stdout io.Writer
	stderr io.Writer

	green  *color.Color
	yellow *color.Color
	red    *color.Color
	gray   *color.Color
	bold   *color.Color
}

func New(opts Options) *Output {
	if opts.NoColor || opts.Plain {
		color.NoColor = true
	}
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Output{
		JSON:    opts.JSON,
		Plain:   opts.Plain,
		Quiet:   opts.Quiet,
		Verbose: opts.Verbose,
		stdout:  stdout,
		stderr:  stderr,
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
		red:     color.New(color.FgRed),
		gray:    color.New(color.FgHiBlack),
		bold:    color.New(color.Bold),
	}
}

func (o *Output) Green(s string) string {
	return o.green.Sprint(s)
}

func (o *Output) Yellow(s string) string {
	return o.yellow.Sprint(s)
}

func (o *Output) Red(s string) string {
	return o.red.Sprint(s)
}

func (o *Output) Gray(s string) string {
	return o.gray.Sprint(s)
}

func (o *Output) Bold(s string) string {
	return o.bold.Sprint(s)
}

func (o *Output) Info(msg string) {
	if o.JSON || o.Quiet {
		return
	}
	fmt.Fprintln(o.stdout, msg)
}

func (o *Output) Success(msg string) {
	if o.JSON || o.Quiet {
		return
	}
	fmt.Fprintln(o.stdout, o.Green(msg))
}

func (o *Output) Warn(msg string) {
	if o.JSON || o.Quiet {
		return
	}
	fmt.Fprintln(o.stdout, o.Yellow(msg))
}

func (o *Output) Debug(msg string) {
	if o.JSON || !o.Verbose {
		return
	}
	fmt.Fprintln(o.stderr, o.Gray(msg))
}

func (o *Output) Error(msg string) {
	fmt.Fprintln(o.stderr, o.Red(msg))
}

func (o *Output) Print(msg string) {
	if o.JSON || o.Quiet {
		return
	}
	fmt.Fprintln(o.stdout, msg)
}

func (o *Output) EmitJSON(v any) error {
	enc := json.NewEncoder(o.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Result prints a finished playlist. In quiet mode only the URL is written so
// the command composes with other tools.
func (o *Output) Result(resp playlist.Response) error {
	if o.JSON {
		return o.EmitJSON(resp)
	}
	if o.Quiet {
		fmt.Fprintln(o.stdout, resp.Playlist.URL)
		return nil
	}
	o.Success("Created " + o.Bold(resp.Playlist.Name))
	o.Print(fmt.Sprintf("  mood:   %s", resp.Mood))
	o.Print(fmt.Sprintf("  tracks: %d", resp.TrackCount))
	o.Print("  " + resp.Playlist.URL)
	if o.Verbose {
		for i, uri := range resp.Tracks {
			o.Print(o.Gray(fmt.Sprintf("  %2d. %s", i+1, uri)))
		}
	}
	return nil
}

type failureJSON struct {
	Error       string `json:"error"`
	Reason      string `json:"reason"`
	PlaylistURL string `json:"playlistUrl,omitempty"`
}

// Failure reports a terminal pipeline outcome.
func (o *Output) Failure(f *playlist.Failure) {
	if o.JSON {
		_ = o.EmitJSON(failureJSON{Error: f.Message(), Reason: f.Reason, PlaylistURL: f.PlaylistURL})
		return
	}
	o.Error(f.Message())
	if f.PlaylistURL != "" {
		o.Warn("An empty playlist was left at " + f.PlaylistURL)
	}
	if f.Err != nil {
		o.Debug(f.Err.Error())
	}
}
