package osmschema

import "strconv"

// TagCondition is a boolean predicate over the tag set of one object.
// Evaluation is pure: a missing tag makes the predicate false, never an
// error.
type TagCondition interface {
	Evaluate(tags TagMap) bool
}

type TagNotCondition struct {
	condition TagCondition
}

func NewTagNotCondition(condition TagCondition) *TagNotCondition {
	return &TagNotCondition{condition}
}

func (c *TagNotCondition) Evaluate(tags TagMap) bool {
	return !c.condition.Evaluate(tags)
}

type TagBoolConditionType int

const (
	BoolCondAnd TagBoolConditionType = iota
	BoolCondOr
)

// TagBoolCondition combines child conditions with and/or. An empty "and" is
// vacuously true, an empty "or" is false.
type TagBoolCondition struct {
	condType   TagBoolConditionType
	conditions []TagCondition
}

func NewTagBoolCondition(condType TagBoolConditionType) *TagBoolCondition {
	return &TagBoolCondition{condType: condType}
}

func (c *TagBoolCondition) AddCondition(condition TagCondition) {
	c.conditions = append(c.conditions, condition)
}

func (c *TagBoolCondition) Evaluate(tags TagMap) bool {
	switch c.condType {
	case BoolCondAnd:
		for _, condition := range c.conditions {
			if !condition.Evaluate(tags) {
				return false
			}
		}
		return true
	case BoolCondOr:
		for _, condition := range c.conditions {
			if condition.Evaluate(tags) {
				return true
			}
		}
		return false
	}
	return false
}

type TagExistsCondition struct {
	tag TagID
}

func NewTagExistsCondition(tag TagID) *TagExistsCondition {
	return &TagExistsCondition{tag}
}

func (c *TagExistsCondition) Evaluate(tags TagMap) bool {
	_, ok := tags[c.tag]
	return ok
}

type BinaryOperator int

const (
	OperatorLess BinaryOperator = iota
	OperatorLessEqual
	OperatorEqual
	OperatorNotEqual
	OperatorGreaterEqual
	OperatorGreater
)

type binaryConditionValueType int

const (
	binaryConditionValueString binaryConditionValueType = iota
	binaryConditionValueNumber
)

// TagBinaryCondition compares a tag's value against a literal. With a string
// literal the comparison is lexicographic over the raw value; with a number
// literal the raw value must itself parse as an unsigned number, otherwise
// the condition is false.
type TagBinaryCondition struct {
	tag         TagID
	operator    BinaryOperator
	valueType   binaryConditionValueType
	stringValue string
	numberValue uint64
}

func NewTagStringCondition(tag TagID, operator BinaryOperator, value string) *TagBinaryCondition {
	return &TagBinaryCondition{
		tag:         tag,
		operator:    operator,
		valueType:   binaryConditionValueString,
		stringValue: value,
	}
}

func NewTagNumberCondition(tag TagID, operator BinaryOperator, value uint64) *TagBinaryCondition {
	return &TagBinaryCondition{
		tag:         tag,
		operator:    operator,
		valueType:   binaryConditionValueNumber,
		numberValue: value,
	}
}

func (c *TagBinaryCondition) Evaluate(tags TagMap) bool {
	rawValue, ok := tags[c.tag]
	if !ok {
		return false
	}

	if c.valueType == binaryConditionValueString {
		switch c.operator {
		case OperatorLess:
			return rawValue < c.stringValue
		case OperatorLessEqual:
			return rawValue <= c.stringValue
		case OperatorEqual:
			return rawValue == c.stringValue
		case OperatorNotEqual:
			return rawValue != c.stringValue
		case OperatorGreaterEqual:
			return rawValue >= c.stringValue
		case OperatorGreater:
			return rawValue > c.stringValue
		}
		return false
	}

	value, err := strconv.ParseUint(rawValue, 10, 64)
	if err != nil {
		return false
	}

	switch c.operator {
	case OperatorLess:
		return value < c.numberValue
	case OperatorLessEqual:
		return value <= c.numberValue
	case OperatorEqual:
		return value == c.numberValue
	case OperatorNotEqual:
		return value != c.numberValue
	case OperatorGreaterEqual:
		return value >= c.numberValue
	case OperatorGreater:
		return value > c.numberValue
	}
	return false
}

// TagIsInCondition is true when the tag's raw value appears verbatim in the
// configured value set.
type TagIsInCondition struct {
	tag       TagID
	tagValues map[string]struct{}
}

func NewTagIsInCondition(tag TagID) *TagIsInCondition {
	return &TagIsInCondition{
		tag:       tag,
		tagValues: make(map[string]struct{}),
	}
}

func (c *TagIsInCondition) AddTagValue(value string) {
	c.tagValues[value] = struct{}{}
}

func (c *TagIsInCondition) Evaluate(tags TagMap) bool {
	value, ok := tags[c.tag]
	if !ok {
		return false
	}

	_, found := c.tagValues[value]
	return found
}
