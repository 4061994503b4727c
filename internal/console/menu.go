package console

import "context"

// Menu is one level of the menu tree.
type Menu struct {
	Title   string
	Message string
	Items   []Item
}

// Item is a menu entry. Exactly one of Action, Submenu or Close is set.
type Item struct {
	Label   string
	Name    string
	Action  func(context.Context) error
	Submenu *Menu
	// Close leaves this menu. At the root it ends the program.
	Close bool
}

// Labels returns the item labels in display order.
func (m *Menu) Labels() []string {
	labels := make([]string, 0, len(m.Items))
	for _, item := range m.Items {
		labels = append(labels, item.Label)
	}
	return labels
}

func (c *Console) buildMenu() *Menu {
	basic := &Menu{
		Title: titleBasicMenu,
		Items: []Item{
			{Label: c.listPodsLabel(), Name: actionListPods, Action: c.listPods},
			{Label: labelDescribePod, Name: actionDescribePod, Action: c.describePod},
			{Label: labelCreatePod, Name: actionCreatePod, Action: c.createPod},
			{Label: labelScalePods, Name: actionScaleDeployment, Action: c.scalePods},
			{Label: labelExecCommand, Name: actionExecCommand, Action: c.execCommand},
			{Label: labelDeployToEveryNode, Name: actionDeployToEveryNode, Action: c.deployToEveryNode},
			{Label: labelDeletePod, Name: actionDeletePod, Action: c.deletePod},
			{Label: labelGoBack, Close: true},
		},
	}

	multiplePods := &Menu{
		Title: titleMultiplePodsMenu,
		Items: []Item{
			{Label: labelMultiplePodsDemo, Name: actionCreateMultiplePods, Action: c.createMultiplePods},
			{Label: labelGoBack, Close: true},
		},
	}

	return &Menu{
		Title:   titleMainMenu,
		Message: messageMainMenu,
		Items: []Item{
			{Label: labelBasicOperations, Submenu: basic},
			{Label: labelMultiplePodsMenu, Submenu: multiplePods},
			{Label: labelExit, Close: true},
		},
	}
}

// open shows m until one of its Close items is chosen.
func (c *Console) open(ctx context.Context, m *Menu) error {
	labels := m.Labels()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		index, err := c.prompter.Select(m.Title, m.Message, labels)
		if err != nil {
			return err
		}

		item := m.Items[index]
		switch {
		case item.Close:
			return nil
		case item.Submenu != nil:
			if err := c.open(ctx, item.Submenu); err != nil {
				return err
			}
		case item.Action != nil:
			if err := c.runAction(ctx, item.Name, item.Action); err != nil {
				return err
			}
		}
	}
}
