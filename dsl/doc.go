// Package dsl builds reshape Maps in code.
//
// Fields are declared in output order:
//
//	m := dsl.Object().
//	    Field("id", dsl.String(dsl.Path("order", "id"))).
//	    Field("label", dsl.String(dsl.Concat("Order ", dsl.Path("order", "id")))).
//	    Field("lines", dsl.Each(".order.items*", dsl.Object().
//	        Field("sku", dsl.String(".order.items*.sku")).
//	        Field("qty", dsl.Number(".order.items*.qty")))).
//	    Field("meta", dsl.One(dsl.Object().
//	        Field("version", dsl.Number("2")))).
//	    MustBuild()
//
// Sources follow reshape's rules: a leading dot is a path, anything else is a
// literal, and nested fields of an Each array repeat the wildcard source so
// that each element resolves against its own index.
package dsl
