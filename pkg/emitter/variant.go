package emitter

import "strings"

// variantLayout is the fixed markup of a variant module. Variants reuse the
// parent's schema, so the layout is not derived from a field list.
const variantLayout = `import { {{Parent}}Props, {{Parent}}ImageItem, {{Parent}}LinkItem } from './{{Parent}}';
import { Text, Link, Image } from '{{Library}}';

export function {{Variant}}Variant({ fields }: {{Parent}}Props) {
  return (
    <div id="{{variant}}">
      {fields.descriptionBottom?.value && (
        <Text field={fields.descriptionBottom} tag="p" />
      )}
      {fields.descriptionTop?.value && (
        <Text field={fields.descriptionTop} tag="p" />
      )}
      {fields.images?.map((item: {{Parent}}ImageItem, index: number) => (
        <div key={item.id || index}>
          {item.fields?.Image?.value?.src && (
            <Image field={item.fields.Image} />
          )}
          {item.fields?.link?.value?.href && <Link field={item.fields.link} />}
          {item.fields?.imageDescription?.value && (
            <Text field={item.fields.imageDescription} tag="p" />
          )}
        </div>
      ))}
      {fields.links?.map((item: {{Parent}}LinkItem, index: number) => (
        <div key={item.id || index}>
          {item.fields?.icon?.value && (
            <Text field={item.fields.icon} tag="p" />
          )}
          {item.fields?.link?.value?.href && <Link field={item.fields.link} />}
        </div>
      ))}
      {fields.sliderSpeed?.value && <Text field={fields.sliderSpeed} tag="p" />}
      {fields.title?.value && <Text field={fields.title} tag="h1" />}
    </div>
  );
}
`

// VariantFunctionName is the exported render function of a variant module.
func VariantFunctionName(variant string) string {
	return variant + "Variant"
}

// Variant renders the companion module for variant of parent. The module
// imports the parent's props and item types by name and exports only the
// variant render function: no datasource wrapper and no default export.
func (e *Emitter) Variant(variant, parent string) string {
	replacer := strings.NewReplacer(
		"{{Parent}}", parent,
		"{{Variant}}", variant,
		"{{variant}}", strings.ToLower(variant),
		"{{Library}}", e.library,
	)
	return replacer.Replace(variantLayout)
}
