package token

var keywords = map[string]Kind{
	"if":       KwIf,
	"else":     KwElse,
	"for":      KwFor,
	"while":    KwWhile,
	"loop":     KwLoop,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"include":  KwInclude,
	"to":       KwTo,
	"in":       KwIn,
	"enum":     KwEnum,
	"struct":   KwStruct,
	"fun":      KwFun,
	"func":     KwFun,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
