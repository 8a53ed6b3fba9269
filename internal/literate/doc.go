// Package literate extracts source code from literate Markdown documents.
//
// A document carries a leading YAML front matter block naming the output
// file and any number of fenced code blocks. Blocks tagged with a
// recognized language are concatenated per language and written out as
// <output_filename>.<ext>:
//
//	---
//	output_filename: demo
//	---
//	```python
//	print("hi")
//	```
//
// yields demo.py containing `print("hi")\n`.
package literate
