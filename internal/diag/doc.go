// Package diag holds the diagnostic model shared by the driver and the CLI.
//
// Lexer and parser failures are typed Go errors (*lexer.Error, *parser.Error).
// FromError turns them into Diagnostic records with a stable Code, which
// the driver collects in a bounded Bag and diagfmt renders.
//
// Коды сгруппированы по фазам:
//
//	LEX1xxx  лексер
//	SYN2xxx  парсер
//	IO4xxx   чтение файлов
//	PRJ5xxx  манифест проекта
package diag
