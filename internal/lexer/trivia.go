package lexer

// skipTrivia пропускает пробелы и комментарии "//" до конца строки
// (вместе с завершающим '\n'), пока не встретится значимый байт или EOF.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isSpace(b) {
			lx.cursor.Bump()
			continue
		}
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '/' {
			lx.skipLineComment()
			continue
		}
		return
	}
}

func (lx *Lexer) skipLineComment() {
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '\n' {
			return
		}
	}
}

// scanDirective съедает shebang-строку в самом начале файла.
func (lx *Lexer) scanDirective() {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '#' || b1 != '!' {
		return
	}
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.directive = lx.text(lx.cursor.SpanFrom(start))
	lx.cursor.Eat('\n')
}
