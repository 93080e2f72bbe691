/*
Package operation drives a single reshape pass.

	+---------+     +-----------+     +-------------+     +---------+
	|  Start  | --> |  Loaded   | --> | Transformed | --> | Written |
	+---------+     +-----------+     +-------------+     +---------+
	   load            filter +          strict /            backup +
	   target          replace           dry-run stop        write

🎯 Purpose:
- Loads the target file whole
- Applies every rule, in order, to the cumulative buffer
- Writes the result back in place

⚡ Behaviour:
- A rule that matches nothing is logged and skipped; Strict makes it an error
- DryRun stops after the transform step, Result.Diff shows what would change
- Backup keeps the original content next to the target when it changes
- A load failure leaves the target untouched; a write failure leaves the
  previous contents in place because writes go through a rename

🔍 Example:

	op, err := operation.New(operation.Options{
		Target: "backend/src/routes/listings.rs",
		Rules:  rules,
	})
	if err != nil {
		return err
	}
	if err := operation.NewRunner(&logger).Run(ctx, op); err != nil {
		return err
	}
	fmt.Println(op.Result().Replacement.ReplacementCount)
*/
package operation
