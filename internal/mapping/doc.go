// Package mapping provides the YAML definition schema, parsing and
// validation for generated JSON mappers.
//
// A definition file lists the types of one Go package that get a mapper,
// together with everything the generator cannot infer on its own: JSON
// aliases, the key used for partial updates, lifecycle hooks, the parent
// type whose members are inlined, and custom converters.
//
// # Schema Overview
//
//	version: "1.0.0"
//	package: library
//	import_path: example.com/library
//	imports:
//	  time: time
//	null_policy:
//	  serialize_null_scalars: false
//	  serialize_null_collection_elements: false
//	mappers:
//	  - type: Book
//	    parent: Entity
//	    updatable: true
//	    find_by_key: FindBook
//	    hooks:
//	      pre_serialize: BeforeSerialize
//	      on_parse_complete: AfterParse
//	    fields:
//	      - name: ID
//	        json: [id, book_id]     # first alias is written
//	        type: int64
//	        key: true
//	      - name: Author
//	        type: "*Author"
//	        merge_nested: true      # merged with the stored author too
//	      - name: CreatedAt
//	        type: time.Time
//	        converter: EpochConverter
//
// Field types are Go type expressions. Supported shapes are scalars, pointers
// to scalars, pointers to mapped types (optionally generic), slices, maps with
// string keys and type parameters. Any other leaf type needs a converter.
package mapping
