package sema

import (
	"antimony/internal/ast"
	"antimony/internal/diag"
	"antimony/internal/scope"
	"antimony/internal/target"
	"antimony/internal/types"
)

// checker threads the exclusively owned context (type table plus scope
// table) through one recursive descent over the untyped module.
type checker struct {
	types  *types.Table
	scopes *scope.Table
}

// CheckModule resolves and type-checks an untyped module against the
// default 64-bit target.
func CheckModule(mod *ast.Module) (*Module, error) {
	return CheckModuleFor(mod, target.X86_64())
}

// CheckModuleFor resolves and type-checks an untyped module. The first
// error aborts the whole check; there is no recovery or accumulation.
//
// Struct types are registered before any body, and every top-level
// function is pre-declared in the root scope before any body, so struct
// references in signatures, forward references and mutual recursion all
// resolve.
func CheckModuleFor(mod *ast.Module, tgt target.Target) (*Module, error) {
	c := &checker{
		types:  types.NewTableFor(tgt),
		scopes: scope.NewTable(),
	}
	root := c.scopes.AddRoot()

	structTypes := make([]types.TypeID, len(mod.Structs))
	for i := range mod.Structs {
		id, err := c.types.InsertASTStruct(&mod.Structs[i])
		if err != nil {
			return nil, err
		}
		structTypes[i] = id
	}

	for i := range mod.Functions {
		fn := &mod.Functions[i]
		if _, _, ok := c.scopes.LookupLocal(root, fn.Callable.Name); ok {
			return nil, diag.Newf(diag.StructuralError, fn.Callable.Span,
				"redefinition of function '%s'", fn.Callable.Name)
		}
		fnType, err := c.types.InsertASTCallable(&fn.Callable)
		if err != nil {
			return nil, err
		}
		c.scopes.Insert(root, fn.Callable.Name, fnType)
	}

	structs := make([]Struct, 0, len(mod.Structs))
	for i := range mod.Structs {
		methods, err := c.checkMethods(root, structTypes[i], &mod.Structs[i])
		if err != nil {
			return nil, err
		}
		structs = append(structs, Struct{Type: structTypes[i], Methods: methods})
	}

	functions := make([]Function, 0, len(mod.Functions))
	for i := range mod.Functions {
		fn, err := c.checkFunction(root, &mod.Functions[i])
		if err != nil {
			return nil, err
		}
		functions = append(functions, fn)
	}

	return &Module{
		Types:     c.types,
		Scopes:    c.scopes,
		Functions: functions,
		Structs:   structs,
	}, nil
}

func (c *checker) checkFunction(root scope.ID, fn *ast.Function) (Function, error) {
	ret, err := c.returnType(&fn.Callable)
	if err != nil {
		return Function{}, err
	}
	sc := c.scopes.PushFunction(root, ret)
	params, err := c.declareParams(sc, &fn.Callable)
	if err != nil {
		return Function{}, err
	}
	var body *Stmt
	if fn.Body != nil {
		checked, err := c.checkStmt(sc, fn.Body)
		if err != nil {
			return Function{}, err
		}
		body = &checked
	}
	return Function{
		Callable: Callable{
			Span:   fn.Callable.Span,
			Scope:  sc,
			Name:   fn.Callable.Name,
			Params: params,
			Return: ret,
		},
		Body: body,
	}, nil
}

func (c *checker) checkMethods(root scope.ID, structType types.TypeID, def *ast.StructDef) ([]Method, error) {
	methods := make([]Method, 0, len(def.Methods))
	for i := range def.Methods {
		m := &def.Methods[i]
		ret, err := c.returnType(&m.Callable)
		if err != nil {
			return nil, err
		}
		sc := c.scopes.PushFunction(root, ret)
		self := c.scopes.Insert(sc, "self", structType)
		params, err := c.declareParams(sc, &m.Callable)
		if err != nil {
			return nil, err
		}
		body, err := c.checkStmt(sc, &m.Body)
		if err != nil {
			return nil, err
		}
		methods = append(methods, Method{
			Callable: Callable{
				Span:   m.Callable.Span,
				Scope:  sc,
				Name:   m.Callable.Name,
				Params: params,
				Return: ret,
			},
			Self: self,
			Body: body,
		})
	}
	return methods, nil
}

func (c *checker) returnType(callable *ast.Callable) (types.TypeID, error) {
	if callable.Return == nil {
		return c.types.Builtins().Void, nil
	}
	return c.types.InsertASTType(callable.Return)
}

// declareParams seeds a fresh function scope with the callable's
// parameters, in declaration order.
func (c *checker) declareParams(sc scope.ID, callable *ast.Callable) ([]scope.VariableID, error) {
	params := make([]scope.VariableID, 0, len(callable.Params))
	for i := range callable.Params {
		p := &callable.Params[i]
		ty, err := c.types.InsertASTType(&p.Type)
		if err != nil {
			return nil, err
		}
		params = append(params, c.scopes.Insert(sc, p.Name, ty))
	}
	return params, nil
}
