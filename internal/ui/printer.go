package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/muurk/autodm/internal/catalog"
	"github.com/muurk/autodm/internal/preview"
)

// Printer writes UI components to an output stream.
// Non-interactive commands print all their styled output through a Printer.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the width this printer renders at
func (p *Printer) Width() int {
	return p.width
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = clampWidth(width)
	return p
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Param) {
	p.Println(NewHeader(title, command, params...).SetWidth(p.width).Render())
	p.Newline()
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Param) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details ...Param) {
	p.Println(NewWarningResult(title, details...).SetWidth(p.width).Render())
}

// PrintError prints a failure box; hints default to HintsFor(err)
func (p *Printer) PrintError(title string, err error, hints ...string) {
	p.Println(NewFailureResult(title, err, hints...).SetWidth(p.width).Render())
}

// PrintOutput prints preformatted text in a muted box
func (p *Printer) PrintOutput(title, content string) {
	p.Println(NewOutputBox(title, content).SetWidth(p.width).Render())
}

// PrintPreview prints the phone preview for d with a caption naming the screen
func (p *Printer) PrintPreview(d preview.Descriptor) {
	caption := StepNoteStyle.Render(fmt.Sprintf("  preview: %s", d.Screen.Title()))
	p.Println(caption)
	p.Println(lipgloss.NewStyle().MarginLeft(2).Render(RenderPhone(d)))
}

// PrintPosts prints the catalog as a table
func (p *Printer) PrintPosts(posts []catalog.Post) {
	p.Println(RenderPostsTable(posts, p.width))
}

// RenderPostsTable renders the catalog with likes, comments and a truncated caption
func RenderPostsTable(posts []catalog.Post, width int) string {
	captionWidth := max(width-52, 12)

	rows := make([][]string, 0, len(posts))
	for _, post := range posts {
		rows = append(rows, []string{
			post.ID,
			"@" + post.Username,
			preview.FormatLikes(post.LikeCount),
			strconv.Itoa(post.CommentCount),
			truncate(post.Caption, captionWidth),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(TextColor).Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(MutedColor)).
		Headers("ID", "USER", "LIKES", "COMMENTS", "CAPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.Render()
}
