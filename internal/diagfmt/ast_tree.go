package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"ember/internal/ast"
)

type treeNode struct {
	label    string
	children []*treeNode
}

type treeBlock struct {
	lines []string
	width int
	root  int
}

// FormatASTTree рисует каждый элемент программы деревом сверху вниз:
// метка узла, под ней соединители / | \ и поддеревья детей.
// Метки выравниваются по экранной ширине (runewidth).
func FormatASTTree(w io.Writer, prog *ast.Program, path string) error {
	header := fmt.Sprintf("%s (%d variables, %d functions)", path, len(prog.Variables()), len(prog.Functions()))
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for i, n := range prog.Body {
		block := renderTree(treeFromOutput(buildNode(n)))
		fmt.Fprintf(w, "\nItem[%d]:\n", i)
		for _, line := range block.lines {
			if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}

func treeFromOutput(n *ASTNodeOutput) *treeNode {
	node := &treeNode{label: treeLabel(n)}
	for _, c := range n.Children {
		node.children = append(node.children, treeFromOutput(c))
	}
	return node
}

func treeLabel(n *ASTNodeOutput) string {
	switch n.Kind {
	case "VariableDecl":
		mods := ""
		switch {
		case n.Static:
			mods = " const static"
		case n.Const:
			mods = " const"
		}
		return fmt.Sprintf("VariableDecl %s: %s%s", n.Name, n.Type, mods)
	case "FunctionDecl":
		return fmt.Sprintf("FunctionDecl %s -> %s", n.Name, n.Type)
	case "Arg":
		return n.Name + ": " + n.Type
	case "Ident":
		return n.Name
	case "StringLit":
		return fmt.Sprintf("%q", n.Value)
	case "CharLit":
		return fmt.Sprintf("'%s'", n.Value)
	case "Unary", "Binary":
		return n.Op
	default:
		if n.Value != "" {
			return n.Value
		}
		return n.Kind
	}
}

func textWidth(s string) int { return runewidth.StringWidth(s) }

func padRight(s string, width int) string {
	if w := textWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// renderTree раскладывает дерево в прямоугольный блок строк: метка узла,
// строка соединителей (/ | \) и блоки детей рядом друг с другом.
// root: колонка, над которой стоит метка, для соединителя родителя.
func renderTree(node *treeNode) treeBlock {
	labelWidth := textWidth(node.label)
	if len(node.children) == 0 {
		return treeBlock{lines: []string{node.label}, width: labelWidth, root: labelWidth / 2}
	}

	const spacing = 3

	blocks := make([]treeBlock, len(node.children))
	positions := make([]int, len(node.children))
	childrenWidth, height := 0, 0
	for i, child := range node.children {
		if i > 0 {
			childrenWidth += spacing
		}
		blocks[i] = renderTree(child)
		positions[i] = childrenWidth + blocks[i].root
		childrenWidth += blocks[i].width
		height = max(height, len(blocks[i].lines))
	}

	// центр метки над серединой между крайними детьми
	center := (positions[0] + positions[len(positions)-1]) / 2
	labelStart := center - labelWidth/2
	childOffset := 0
	if labelStart < 0 {
		childOffset = -labelStart
		labelStart = 0
	}
	rootPos := labelStart + labelWidth/2
	width := max(labelStart+labelWidth, childOffset+childrenWidth)

	connector := []byte(strings.Repeat(" ", width))
	connector[rootPos] = '|'
	for _, pos := range positions {
		pos += childOffset
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		}
	}

	lines := make([]string, 0, height+2)
	lines = append(lines,
		padRight(strings.Repeat(" ", labelStart)+node.label, width),
		string(connector),
	)
	for row := range height {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", childOffset))
		for i, b := range blocks {
			if i > 0 {
				sb.WriteString(strings.Repeat(" ", spacing))
			}
			line := ""
			if row < len(b.lines) {
				line = b.lines[row]
			}
			sb.WriteString(padRight(line, b.width))
		}
		lines = append(lines, padRight(sb.String(), width))
	}
	return treeBlock{lines: lines, width: width, root: rootPos}
}
