// Package main запускает multichecker для linkshortener.
//
// Состав:
//   - анализаторы go/analysis/passes, которые ловят типичные ошибки HTTP-кода
//     (незакрытые тела ответов, errors.As с не-указателем, shadow ошибок);
//   - все SA-анализаторы staticcheck и выбранные S/ST/QF проверки;
//   - bodyclose;
//   - собственный noexit (запрещает os.Exit и log.Fatal* в main).
//
// Запуск:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"strings"

	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/analysis/lint"
	"honnef.co/go/tools/quickfix"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	"github.com/Totarae/linkshortener/cmd/staticlint/noexit"
)

// extraChecks проверки вне класса SA, которые включаем поимённо.
var extraChecks = map[string]bool{
	"S1000":  true, // select с одним case
	"S1002":  true, // сравнение bool с константой
	"ST1005": true, // формат текста ошибок
	"ST1019": true, // повторный импорт
	"QF1003": true, // if/else цепочка вместо switch
}

func main() {
	analyzers := []*analysis.Analyzer{
		errorsas.Analyzer,
		httpresponse.Analyzer,
		lostcancel.Analyzer,
		nilness.Analyzer,
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		unusedresult.Analyzer,
		bodyclose.Analyzer,
		noexit.NewAnalyzer(),
	}

	for _, a := range staticcheck.Analyzers {
		if strings.HasPrefix(a.Analyzer.Name, "SA") {
			analyzers = append(analyzers, a.Analyzer)
		}
	}
	analyzers = append(analyzers, pick(simple.Analyzers, stylecheck.Analyzers, quickfix.Analyzers)...)

	multichecker.Main(analyzers...)
}

// pick отбирает анализаторы из extraChecks.
func pick(sets ...[]*lint.Analyzer) []*analysis.Analyzer {
	var out []*analysis.Analyzer
	for _, set := range sets {
		for _, a := range set {
			if extraChecks[a.Analyzer.Name] {
				out = append(out, a.Analyzer)
			}
		}
	}
	return out
}
