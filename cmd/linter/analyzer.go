// Package linter содержит анализатор, запрещающий завершать процесс вне main.main.
//
// Клиент мониторинга встраивается в чужое приложение и не должен его ронять,
// поэтому panic, log.Fatal*, log.Panic* и os.Exit допустимы только в main.main.
package linter

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

const (
	msgPanic = "use of builtin panic is discouraged"
	msgExit  = "call to %s.%s terminates the process outside main.main"
)

// forbidden — функции стандартной библиотеки, завершающие процесс или раскручивающие стек.
var forbidden = map[string]map[string]bool{
	"log": {
		"Fatal": true, "Fatalf": true, "Fatalln": true,
		"Panic": true, "Panicf": true, "Panicln": true,
	},
	"os": {
		"Exit": true,
	},
}

var Analyzer = &analysis.Analyzer{
	Name: "nofatal",
	Doc:  "reports uses of builtin panic, log.Fatal/log.Panic and os.Exit outside main.main",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		pkgName := file.Name.Name
		for _, decl := range file.Decls {
			inMain := false
			if fDecl, ok := decl.(*ast.FuncDecl); ok {
				inMain = pkgName == "main" && fDecl.Recv == nil && fDecl.Name.Name == "main"
			}
			ast.Inspect(decl, func(node ast.Node) bool {
				if call, ok := node.(*ast.CallExpr); ok {
					checkCall(pass, call, inMain)
				}
				return true
			})
		}
	}
	return nil, nil
}

func checkCall(pass *analysis.Pass, call *ast.CallExpr, inMain bool) {
	// Встроенный panic запрещён везде, включая main.main.
	if id, ok := call.Fun.(*ast.Ident); ok {
		if _, builtin := pass.TypesInfo.Uses[id].(*types.Builtin); builtin && id.Name == "panic" {
			pass.Reportf(id.Pos(), msgPanic)
		}
		return
	}

	if inMain {
		return
	}

	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return
	}
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return
	}
	pkgNameObj, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	if !ok {
		return
	}

	pkgPath := pkgNameObj.Imported().Path()
	if forbidden[pkgPath][sel.Sel.Name] {
		pass.Reportf(sel.Sel.Pos(), msgExit, pkgPath, sel.Sel.Name)
	}
}
